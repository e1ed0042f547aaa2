package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"bookmanager/internal/collection"
	"bookmanager/internal/entity"
	"bookmanager/internal/gateway"

	"github.com/spf13/cobra"
)

var (
	editTitle       string
	editAuthors     []string
	editDescription string
	editCover       string
	rmYes           bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user's collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		user := session.User()
		fmt.Printf("%s <%s>\n\n", user.Name, user.Email)
		printBookTable(session.Current())
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add ISBN",
	Short: "Add a book to the collection by ISBN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		book, err := session.AddByISBN(cmd.Context(), args[0])
		switch {
		case errors.Is(err, collection.ErrDuplicateISBN):
			return fmt.Errorf("ISBN %s is already in the collection", args[0])
		case errors.Is(err, gateway.ErrInvalidISBN):
			return fmt.Errorf("%s is not a valid ISBN", args[0])
		case err != nil:
			return err
		}
		fmt.Printf("Added %q (%s)\n", book.Title, book.ISBN)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm ISBN",
	Short: "Remove a book from the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !rmYes {
			return fmt.Errorf("refusing to delete without --yes")
		}
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		if err := session.Remove(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete failed, the book was kept: %w", err)
		}
		fmt.Println(session.Notice())
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate ISBN RATING",
	Short: "Rate a book from 1 to 5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[1])
		if err != nil || rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be an integer between 1 and 5")
		}
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		book, err := session.UpdateRating(cmd.Context(), args[0], rating)
		if err != nil {
			if errors.Is(err, gateway.ErrInvalidRating) {
				return fmt.Errorf("the backend rejected rating %d", rating)
			}
			return err
		}
		fmt.Printf("Rating saved for %q\n", book.Title)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ISBN",
	Short: "Edit a book's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		book, ok := session.Book(args[0])
		if !ok {
			return fmt.Errorf("ISBN %s is not in the collection", args[0])
		}

		details := entity.BookDetails{
			Title:       book.Title,
			Authors:     book.Authors,
			Description: book.Description,
			CoverURL:    book.CoverURL,
		}
		if cmd.Flags().Changed("title") {
			details.Title = editTitle
		}
		if cmd.Flags().Changed("authors") {
			details.Authors = editAuthors
		}
		if cmd.Flags().Changed("description") {
			details.Description = editDescription
		}
		if cmd.Flags().Changed("cover") {
			details.CoverURL = editCover
		}

		updated, err := session.UpdateDetails(cmd.Context(), args[0], details)
		if err != nil {
			return err
		}
		fmt.Printf("Updated %q\n", updated.Title)
		return nil
	},
}

var bookCmd = &cobra.Command{
	Use:   "book ISBN",
	Short: "Show one book with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGateway()
		if err != nil {
			return err
		}
		if userID == "" {
			return fmt.Errorf("--user is required")
		}
		book, err := client.GetBook(cmd.Context(), userID, args[0])
		if err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				return fmt.Errorf("book %s not found", args[0])
			}
			return err
		}
		printBook(book)
		return nil
	},
}

func printBookTable(books []entity.Book) {
	if len(books) == 0 {
		fmt.Println("No books yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ISBN\tTITLE\tRATING")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ISBN, b.Title, formatRating(b.Rating))
	}
	_ = w.Flush()
}

func printBook(b entity.Book) {
	fmt.Printf("%s\n", b.Title)
	fmt.Printf("  ISBN:      %s\n", b.ISBN)
	fmt.Printf("  Authors:   %s\n", strings.Join(b.Authors, ", "))
	if b.Publisher != "" {
		fmt.Printf("  Publisher: %s (%s)\n", b.Publisher, b.PublishedDate)
	}
	fmt.Printf("  Rating:    %s\n", formatRating(b.Rating))
	if b.Description != "" {
		fmt.Printf("  %s\n", b.Description)
	}
	if len(b.Reviews) > 0 {
		fmt.Println("  Reviews:")
		for _, r := range b.Reviews {
			fmt.Printf("    [%s] %d/5 %s\n", r.ID, r.Rating, r.ReviewText)
		}
	}
}

func formatRating(r *int) string {
	if r == nil {
		return "-"
	}
	return strconv.Itoa(*r)
}

func init() {
	rmCmd.Flags().BoolVar(&rmYes, "yes", false, "confirm the deletion")

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringSliceVar(&editAuthors, "authors", nil, "new author list")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	editCmd.Flags().StringVar(&editCover, "cover", "", "new cover URL")

	rootCmd.AddCommand(showCmd, addCmd, rmCmd, rateCmd, editCmd, bookCmd)
}
