package main

import (
	"fmt"
	"strconv"

	"bookmanager/internal/collection"

	"github.com/spf13/cobra"
)

var (
	searchTitle  string
	searchAuthor string
	searchYear   string
	searchRating int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the collection by title, author and year",
	Long: `Search delegates title/author/year to the backend; blank criteria
impose no constraint. With --rating the server result is additionally
narrowed to books with exactly that rating.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		engine := collection.NewEngine(client, session)

		criteria := collection.Criteria{
			Title:  searchTitle,
			Author: searchAuthor,
			Year:   searchYear,
			Rating: searchRating,
		}
		if err := engine.Apply(cmd.Context(), criteria); err != nil {
			fmt.Println(engine.ErrorMessage())
			return err
		}
		if engine.NoResults() {
			fmt.Println("No books match the filter.")
			return nil
		}
		printBookTable(session.Current())
		return nil
	},
}

var filterRatingCmd = &cobra.Command{
	Use:   "filter-rating RATING",
	Short: "Show only books with the given rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[0])
		if err != nil || rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be an integer between 1 and 5")
		}
		client, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		engine := collection.NewEngine(client, session)
		if err := engine.FilterByRating(cmd.Context(), rating); err != nil {
			fmt.Println(engine.ErrorMessage())
			return err
		}
		if engine.NoResults() {
			fmt.Println("No books match the filter.")
			return nil
		}
		printBookTable(session.Current())
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "title contains")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "author contains")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "publication year")
	searchCmd.Flags().IntVar(&searchRating, "rating", 0, "exact rating (client-side filter)")

	rootCmd.AddCommand(searchCmd, filterRatingCmd)
}
