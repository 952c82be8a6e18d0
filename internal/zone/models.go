package zone

// HotZone multiplies the value of any territory claimed within its radius.
// Zones are reference data: loaded once, never mutated by capture activity.
type HotZone struct {
	ID         string  `json:"id" yaml:"id"`
	Lat        float64 `json:"lat" yaml:"lat"`
	Lng        float64 `json:"lng" yaml:"lng"`
	RadiusM    float64 `json:"radius" yaml:"radius"`
	Title      string  `json:"title" yaml:"title"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	Type       string  `json:"type" yaml:"type"`
	Color      string  `json:"color" yaml:"color"`
}

// Defaults is the launch zone set, Surat-focused.
func Defaults() []HotZone {
	return []HotZone{
		{ID: "s1", Lat: 21.1702, Lng: 72.8311, RadiusM: 1000, Title: "Surat Center", Multiplier: 2.5, Type: "multiplier", Color: "#00FFCC"},
		{ID: "s2", Lat: 21.1274, Lng: 72.7153, RadiusM: 1500, Title: "Dumas Beach Loop", Multiplier: 3.0, Type: "event", Color: "#FF007A"},
		{ID: "s3", Lat: 21.1748, Lng: 72.7844, RadiusM: 800, Title: "VR Mall Hotspot", Multiplier: 2.0, Type: "multiplier", Color: "#FFCB00"},
		{ID: "s4", Lat: 21.1923, Lng: 72.8155, RadiusM: 600, Title: "Surat Castle", Multiplier: 2.2, Type: "multiplier", Color: "#8F00FF"},
		{ID: "h1", Lat: 12.9716, Lng: 77.5946, RadiusM: 500, Title: "Bangalore Hub", Multiplier: 2.5, Type: "multiplier", Color: "#FF7A00"},
		{ID: "h2", Lat: 19.0760, Lng: 72.8777, RadiusM: 800, Title: "Mumbai Front", Multiplier: 3.0, Type: "multiplier", Color: "#FF2D55"},
	}
}
