// Command walker simulates a runner closing a square loop against a live
// server. It drives the same capture and sync pipeline the mobile client
// uses, so a local server plus a walker gives a full end-to-end run.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaswat2031/rungo/internal/capture"
	"github.com/shaswat2031/rungo/internal/ledger"
	"github.com/shaswat2031/rungo/internal/presence"
	clientsync "github.com/shaswat2031/rungo/internal/sync"
)

var (
	serverURL string
	userID    string
	userColor string
	startLat  float64
	startLng  float64
	sideM     float64
	speedMS   float64
)

var rootCmd = &cobra.Command{
	Use:   "walker",
	Short: "Simulated runner that captures one square territory",
	Run: func(cmd *cobra.Command, args []string) {
		if err := walk(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "walker: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:3000", "server base URL")
	rootCmd.Flags().StringVar(&userID, "user", "walker-1", "user ID to walk as")
	rootCmd.Flags().StringVar(&userColor, "color", "#00FFCC", "trail color")
	rootCmd.Flags().Float64Var(&startLat, "lat", 21.1702, "start latitude")
	rootCmd.Flags().Float64Var(&startLng, "lng", 72.8311, "start longitude")
	rootCmd.Flags().Float64Var(&sideM, "size", 60, "square side length in meters")
	rootCmd.Flags().Float64Var(&speedMS, "speed", 2.5, "walking speed in m/s")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// squareFixes generates timestamped GPS fixes tracing a square of side sideM,
// starting and ending at the same corner. Longitude steps are corrected for
// latitude so the square holds its shape away from the equator.
func squareFixes(lat, lng, side, speed float64, start time.Time) []capture.Position {
	dLat := side / 111320.0
	dLng := dLat / math.Cos(lat*math.Pi/180)

	corners := []struct{ lat, lng float64 }{
		{lat, lng},
		{lat, lng + dLng},
		{lat + dLat, lng + dLng},
		{lat + dLat, lng},
		{lat, lng},
	}

	stepsPerSide := int(math.Max(2, math.Round(side/speed)))
	stepDur := time.Duration(float64(time.Second) * side / speed / float64(stepsPerSide))

	var fixes []capture.Position
	ts := start
	for i := 0; i < len(corners)-1; i++ {
		from, to := corners[i], corners[i+1]
		for s := 0; s < stepsPerSide; s++ {
			f := float64(s) / float64(stepsPerSide)
			fixes = append(fixes, capture.Position{
				Latitude:  from.lat + (to.lat-from.lat)*f,
				Longitude: from.lng + (to.lng-from.lng)*f,
				Timestamp: ts.UnixMilli(),
				Accuracy:  8,
				Speed:     speed,
			})
			ts = ts.Add(stepDur)
		}
	}
	last := corners[len(corners)-1]
	fixes = append(fixes, capture.Position{
		Latitude:  last.lat,
		Longitude: last.lng,
		Timestamp: ts.UnixMilli(),
		Accuracy:  8,
		Speed:     speed,
	})
	return fixes
}

// replaySource emits a fixed list of fixes with a short real-time delay
// between them, standing in for a device GPS subscription.
type replaySource struct {
	fixes []capture.Position
	delay time.Duration
}

func (r replaySource) Subscribe(ctx context.Context) (<-chan capture.Position, error) {
	ch := make(chan capture.Position)
	go func() {
		defer close(ch)
		for _, p := range r.fixes {
			select {
			case <-ctx.Done():
				return
			case ch <- p:
			}
			if r.delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(r.delay):
				}
			}
		}
	}()
	return ch, nil
}

func walk(ctx context.Context) error {
	client := clientsync.New(serverURL, userID, userColor)
	client.OnPresence = func(actives []presence.Active) {
		fmt.Printf("nearby runners: %d\n", len(actives))
	}

	pullCtx, stopPull := context.WithCancel(ctx)
	defer stopPull()
	go client.RunPull(pullCtx)

	looped := make(chan capture.Path, 1)
	var session *capture.Session
	session = capture.NewSession(
		func(path capture.Path) {
			client.PushPath(session.ID, path)
		},
		func(path capture.Path) {
			looped <- path.Clone()
		},
	)
	client.BindSession(session.ID)

	src := replaySource{
		fixes: squareFixes(startLat, startLng, sideM, speedMS, time.Now()),
		delay: 50 * time.Millisecond,
	}
	if err := session.Start(ctx, src); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer client.Deregister()
	defer session.Stop()

	fmt.Printf("walking a %.0fm square at %.1f m/s from (%.4f, %.4f)\n", sideM, speedMS, startLat, startLng)

	var path capture.Path
	select {
	case <-ctx.Done():
		return ctx.Err()
	case path = <-looped:
	case <-time.After(2 * time.Minute):
		return fmt.Errorf("loop never closed")
	}

	if err := capture.ValidatePath(path); err != nil {
		return fmt.Errorf("path rejected: %w", err)
	}

	zones, err := client.FetchZones(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zone fetch failed, claiming without multipliers: %v\n", err)
	}
	area := capture.FinalAreaM2(path, zones)
	distance := session.DistanceM()

	xp := ledger.XPForArea(area)
	stats := ledger.Stats{
		XP:             xp,
		Level:          ledger.Level(xp),
		TotalAreaM2:    area,
		TotalDistanceM: distance,
		LoopCount:      1,
		LongestRunM:    distance,
	}
	territory := ledger.Territory{
		UserID: userID,
		Path:   path,
		AreaM2: area,
		Color:  userColor,
		City:   "Surat",
	}

	if err := client.SubmitClaim(territory, stats); err != nil {
		return fmt.Errorf("submit claim: %w", err)
	}

	fmt.Printf("claimed %.0f m² over %.0f m walked\n", area, distance)
	return nil
}
