package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/floodmatch/graphio"
	"github.com/katalvlaran/floodmatch/mwpm"
	"github.com/katalvlaran/floodmatch/wgraph"
)

var (
	graphPath    string
	syndromePath string
	precision    int
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode syndrome batches against a weighted detector graph",
	Long: `Decode loads a weighted graph description (JSON, optionally lz4
compressed), discretizes it, and matches each syndrome row with minimum
total weight. One observable bitstring is printed per row.`,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&graphPath, "graph", "", "graph description file (.json or .json.lz4)")
	decodeCmd.Flags().StringVar(&syndromePath, "syndromes", "", "syndrome batch file (.json or .json.lz4)")
	decodeCmd.Flags().IntVar(&precision, "precision", wgraph.DefaultNumDistinctWeights, "number of distinct integer weights after discretization")
	_ = decodeCmd.MarkFlagRequired("graph")
	_ = decodeCmd.MarkFlagRequired("syndromes")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	wg, err := graphio.LoadGraph(graphPath)
	if err != nil {
		return err
	}
	log.Info().
		Int("nodes", wg.NumNodes()).
		Int("edges", wg.NumEdges()).
		Int("observables", wg.NumObservables()).
		Msg("graph loaded")

	g, err := wg.ToMatchingGraph(precision)
	if err != nil {
		return err
	}
	syndromes, err := graphio.LoadSyndromes(syndromePath)
	if err != nil {
		return err
	}

	dec := mwpm.NewDecoder(g)
	start := time.Now()
	for i, syndrome := range syndromes {
		res, err := dec.Decode(syndrome)
		if err != nil {
			return fmt.Errorf("syndrome %d: %w", i, err)
		}
		log.Debug().
			Int("syndrome", i).
			Int("pairs", len(res.Pairs)).
			Int64("weight", res.Weight).
			Msg("decoded")
		fmt.Fprintln(cmd.OutOrStdout(), res.ObservableMask.Bitstring(wg.NumObservables()))
	}
	log.Info().
		Int("syndromes", len(syndromes)).
		Dur("elapsed", time.Since(start)).
		Msg("decode finished")

	return nil
}
