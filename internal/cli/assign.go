package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

var (
	assignAddr        string
	assignShip        string
	assignTask        string
	assignSite        string
	assignAsteroid    string
	assignStation     string
	assignDestination string
	assignDuration    uint64
	assignOwner       string
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Queue a ship task against a running simdaemon",
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignAddr, "addr", "http://localhost:8090", "simdaemon base address")
	assignCmd.Flags().StringVar(&assignShip, "ship", "", "ship id (required)")
	assignCmd.Flags().StringVar(&assignTask, "task", "", "one of survey, deep_scan, mine, deposit, transit (required)")
	assignCmd.Flags().StringVar(&assignSite, "site", "", "scan site id (survey)")
	assignCmd.Flags().StringVar(&assignAsteroid, "asteroid", "", "asteroid id (deep_scan, mine)")
	assignCmd.Flags().StringVar(&assignStation, "station", "", "station id (deposit)")
	assignCmd.Flags().StringVar(&assignDestination, "destination", "", "node id (transit)")
	assignCmd.Flags().Uint64Var(&assignDuration, "duration-ticks", 0, "duration in ticks (mine, transit)")
	assignCmd.Flags().StringVar(&assignOwner, "owner", "", "principal id issuing this command")
	assignCmd.MarkFlagRequired("ship")
	assignCmd.MarkFlagRequired("task")
}

func runAssign(cmd *cobra.Command, args []string) error {
	kind, err := buildTaskKind()
	if err != nil {
		return err
	}

	envelope := events.CommandEnvelope{
		IssuedBy: simid.PrincipalID(assignOwner),
		Command: events.Command{
			ShipID:   simid.ShipID(assignShip),
			TaskKind: kind,
		},
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encoding command: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(assignAddr+"/commands", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contacting simdaemon at %s: %w", assignAddr, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("simdaemon rejected command (%s): %s", resp.Status, body)
	}
	fmt.Printf("queued %s for %s\n", assignTask, assignShip)
	return nil
}

func buildTaskKind() (simstate.TaskKind, error) {
	switch assignTask {
	case "survey":
		if assignSite == "" {
			return simstate.TaskKind{}, fmt.Errorf("--site is required for survey")
		}
		return simstate.TaskKind{Kind: simstate.TaskSurvey, Site: simid.SiteID(assignSite)}, nil
	case "deep_scan":
		if assignAsteroid == "" {
			return simstate.TaskKind{}, fmt.Errorf("--asteroid is required for deep_scan")
		}
		return simstate.TaskKind{Kind: simstate.TaskDeepScan, Asteroid: simid.AsteroidID(assignAsteroid)}, nil
	case "mine":
		if assignAsteroid == "" {
			return simstate.TaskKind{}, fmt.Errorf("--asteroid is required for mine")
		}
		return simstate.TaskKind{Kind: simstate.TaskMine, Asteroid: simid.AsteroidID(assignAsteroid), DurationTicks: assignDuration}, nil
	case "deposit":
		if assignStation == "" {
			return simstate.TaskKind{}, fmt.Errorf("--station is required for deposit")
		}
		return simstate.TaskKind{Kind: simstate.TaskDeposit, Station: simid.StationID(assignStation)}, nil
	case "transit":
		if assignDestination == "" {
			return simstate.TaskKind{}, fmt.Errorf("--destination is required for transit")
		}
		return simstate.TaskKind{Kind: simstate.TaskTransit, Destination: simid.NodeID(assignDestination), TotalTicks: assignDuration}, nil
	default:
		return simstate.TaskKind{}, fmt.Errorf("unknown task kind %q", assignTask)
	}
}
