package main

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/padelnueve/tracker/internal/lifecycle"
	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "Seed for the generated names and scores (0 means random)")
}

var simulateSeed int64

// simulateCmd runs a complete tournament locally: fake roster, three pairs,
// nine scored matches, final board. No server or database involved.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play out a full tournament locally with generated players",
	RunE: func(cmd *cobra.Command, args []string) error {
		faker := gofakeit.New(uint64(simulateSeed))
		svc := lifecycle.NewSimulated(nil, nil)

		for i := 0; i < 6; i++ {
			if err := svc.AddPlayer(faker.FirstName() + " " + faker.LastName()); err != nil {
				return err
			}
		}
		players, err := svc.Players()
		if err != nil {
			return err
		}

		fmt.Println("Roster:")
		for _, p := range players {
			fmt.Printf("  %s\n", p.Name)
		}

		for i := 0; i < 6; i += 2 {
			pair, err := svc.CreatePair(players[i].ID, players[i+1].ID)
			if err != nil {
				return err
			}
			fmt.Printf("Pair confirmed: %s\n", pair.Name)
		}

		state, err := svc.Start(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Tournament started with %d matches\n\n", len(state.Matches))

		for i, match := range state.Matches {
			s1 := faker.Number(0, lifecycle.MaxGames)
			s2 := faker.Number(0, lifecycle.MaxGames)
			for s1 == s2 {
				s2 = faker.Number(0, lifecycle.MaxGames)
			}
			if err := svc.UpdateScore(i, tournament.Side1, s1); err != nil {
				return err
			}
			if err := svc.UpdateScore(i, tournament.Side2, s2); err != nil {
				return err
			}
			fmt.Printf("  %s: %s %d - %d %s\n", match.ID, match.T1.Name, s1, s2, match.T2.Name)
		}

		stats, _, err := svc.Standings()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(tournament.FormatStandings(stats))

		entry, err := svc.Finish(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("\nChampions: %s 🏆\n", entry.Winner.Name)
		return nil
	},
}
