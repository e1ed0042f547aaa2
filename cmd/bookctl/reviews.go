package main

import (
	"fmt"

	"bookmanager/internal/entity"

	"github.com/spf13/cobra"
)

var (
	reviewRating int
	reviewText   string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage reviews of a book",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add ISBN",
	Short: "Add a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewRating < 1 || reviewRating > 5 {
			return fmt.Errorf("--rating must be between 1 and 5")
		}
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		review, err := session.AddReview(cmd.Context(), args[0], entity.Review{
			Rating:     reviewRating,
			ReviewText: reviewText,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Review %s added.\n", review.ID)
		return nil
	},
}

var reviewEditCmd = &cobra.Command{
	Use:   "edit ISBN REVIEW_ID",
	Short: "Replace a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewRating < 1 || reviewRating > 5 {
			return fmt.Errorf("--rating must be between 1 and 5")
		}
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		_, err = session.UpdateReview(cmd.Context(), args[0], args[1], entity.Review{
			Rating:     reviewRating,
			ReviewText: reviewText,
		})
		if err != nil {
			return err
		}
		fmt.Println("Review updated.")
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list ISBN",
	Short: "List the reviews of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userID == "" {
			return fmt.Errorf("--user is required")
		}
		client, err := newGateway()
		if err != nil {
			return err
		}
		reviews, err := client.GetReviews(cmd.Context(), userID, args[0])
		if err != nil {
			return err
		}
		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}
		for _, r := range reviews {
			fmt.Printf("[%s] %d/5 %s\n", r.ID, r.Rating, r.ReviewText)
		}
		return nil
	},
}

var reviewRmCmd = &cobra.Command{
	Use:   "rm ISBN REVIEW_ID",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		if err := session.DeleteReview(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Review deleted.")
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{reviewAddCmd, reviewEditCmd} {
		cmd.Flags().IntVar(&reviewRating, "rating", 0, "rating from 1 to 5")
		cmd.Flags().StringVar(&reviewText, "text", "", "review text")
	}

	reviewCmd.AddCommand(reviewAddCmd, reviewEditCmd, reviewListCmd, reviewRmCmd)
	rootCmd.AddCommand(reviewCmd)
}
