package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ruddit-go/internal/app"
	"ruddit-go/internal/config"
	"ruddit-go/internal/model"
	"ruddit-go/internal/ruddit"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := app.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies environment overrides and validates the result.
func loadConfig() (*config.Config, string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}
	path := defaults["config_path"]

	cfg, err := config.ReadFromFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	config.ApplyEnv(cfg, os.Getenv)
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newApp reads the config and creates a RudditApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Search", "ClearSaved").
func newApp(ctx context.Context, operation string) (*app.RudditApp, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewRudditApp(ctx, cfg, path, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func printPosts(posts []model.Post) {
	if len(posts) == 0 {
		fmt.Println("No posts.")
		return
	}
	for _, p := range posts {
		marks := ""
		if p.Engaged {
			marks += " [engaged]"
		}
		if p.Assignee != "" {
			marks += " @" + p.Assignee
		}
		fmt.Printf("%-8s  %s  %-6s  r/%-16s  %-14s  %s%s\n",
			p.ID.String(), p.FormattedDate, p.Intent, p.Subreddit, p.SortType, p.Title, marks)
	}
}

var rootCmd = &cobra.Command{
	Use:          "ruddit",
	Short:        "Collect, triage and answer posts from a content API",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		installID := uuid.New().String()
		cfg := config.NewConfig(installID, defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Install ID: %s\n", installID)
		fmt.Printf("Base Dir:   %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		set := func(s string) string {
			if s == "" {
				return "(not set)"
			}
			return "(set)"
		}
		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Install ID:    %s\n", cfg.InstallID)
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Client ID:     %s\n", set(cfg.Reddit.ClientID))
		fmt.Printf("Client Secret: %s\n", set(cfg.Reddit.ClientSecret))
		fmt.Printf("Username:      %s\n", set(cfg.Reddit.Username))
		fmt.Printf("Facets:        %s\n", strings.Join(cfg.Query.Facets, ","))
		fmt.Printf("Database:      %s\n", cfg.Database.Type)
		for _, v := range cfg.Vaults {
			fmt.Printf("Vault:         %s (%s)\n", v.Name, v.Type)
		}
		enc := cfg.Encryption.Type
		if enc == "" {
			enc = "none"
		}
		fmt.Printf("Encryption:    %s\n", enc)
		fmt.Printf("Watches:       %d\n", len(cfg.Watches))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, path, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", path)
		return nil
	},
}

// auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage access tokens",
}

var authServiceCmd = &cobra.Command{
	Use:   "service",
	Short: "Fetch a new application token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "AuthService")
		if err != nil {
			return err
		}
		defer a.Close()

		ttl, err := a.RefreshServiceToken(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Service token valid for %s\n", ttl.Truncate(time.Second))
		return nil
	},
}

var authUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Check the configured account credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "AuthUser")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.CheckUserToken(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Account credentials accepted")
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize ruddit in the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "AuthLogin")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()
		tok, err := a.Login(ctx, func(consent string) {
			fmt.Printf("Open this URL to authorize ruddit:\n\n  %s\n\n", consent)
		})
		if err != nil {
			return err
		}
		fmt.Printf("Authorized. Token expires %s\n", tok.Expiry.Local().Format(time.DateTime))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "AuthStatus")
		if err != nil {
			return err
		}
		defer a.Close()

		statuses, err := a.AuthStatus()
		if err != nil {
			return err
		}
		for _, s := range statuses {
			switch {
			case !s.Present && s.Refresh:
				fmt.Printf("%-8s  none cached, refresh token stored\n", s.Kind)
			case !s.Present:
				fmt.Printf("%-8s  none\n", s.Kind)
			case s.Usable:
				fmt.Printf("%-8s  valid until %s\n", s.Kind, s.Expiry.Local().Format(time.DateTime))
			default:
				fmt.Printf("%-8s  expired at %s\n", s.Kind, s.Expiry.Local().Format(time.DateTime))
			}
		}
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Run a query and replace the current search",
	Long:  "Run a query across the configured facets. A query of the form r/NAME lists that community.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facets, _ := cmd.Flags().GetStringSlice("facet")
		pages, _ := cmd.Flags().GetInt("pages")
		community, _ := cmd.Flags().GetString("community")
		appendOnly, _ := cmd.Flags().GetBool("append")
		after, _ := cmd.Flags().GetString("after")
		if after != "" && len(facets) != 1 {
			return fmt.Errorf("--after needs exactly one --facet")
		}

		opName := "Search"
		if after != "" {
			opName = "NextPage"
		}
		a, err := newApp(cmd.Context(), opName)
		if err != nil {
			return err
		}
		defer a.Close()

		q := ruddit.ParseQuery(strings.Join(args, " "))
		if community != "" && q.Mode == ruddit.ModeSearch {
			q.Community = community
		}
		q.Facets = facets
		q.MaxPages = pages

		if after != "" {
			p, err := a.NextPage(cmd.Context(), q, facets[0], after)
			if err != nil {
				return fmt.Errorf("next page failed: %w", err)
			}
			printPosts(p.Posts)
			if n := len(p.Rejected); n > 0 {
				fmt.Fprintf(os.Stderr, "%d item(s) skipped: unusable id\n", n)
			}
			fmt.Printf("\n%d post(s) appended\n", len(p.Posts))
			if p.After != "" {
				fmt.Printf("more: --facet %s --after %s\n", facets[0], p.After)
			}
			return nil
		}

		res, err := a.Search(cmd.Context(), q, appendOnly)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		printPosts(res.Posts)
		for facet, ferr := range res.FailedFacets {
			fmt.Fprintf(os.Stderr, "facet %s failed: %v\n", facet, ferr)
		}
		if res.Rejected > 0 {
			fmt.Fprintf(os.Stderr, "%d item(s) skipped: unusable id\n", res.Rejected)
		}
		fmt.Printf("\n%d post(s) across %s\n", len(res.Posts), strings.Join(res.Facets, ","))
		for _, facet := range res.Facets {
			if c, ok := res.FacetCursors[facet]; ok {
				fmt.Printf("more: --facet %s --after %s\n", facet, c)
			}
		}
		return nil
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current search",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "CurrentSearch")
		if err != nil {
			return err
		}
		defer a.Close()

		posts, err := a.CurrentSearch()
		if err != nil {
			return err
		}
		printPosts(posts)
		return nil
	},
}

// comments command
var commentsCmd = &cobra.Command{
	Use:   "comments REF",
	Short: "Fetch and store a post's comments (id, t3_ fullname or URL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, _ := cmd.Flags().GetBool("stored")

		if stored {
			a, err := newApp(cmd.Context(), "Comments")
			if err != nil {
				return err
			}
			defer a.Close()
			comments, err := a.Comments(args[0])
			if err != nil {
				return err
			}
			printComments(comments)
			return nil
		}

		a, err := newApp(cmd.Context(), "FetchComments")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.FetchComments(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetching comments: %w", err)
		}
		printComments(res.Comments)
		fmt.Printf("\n%d comment(s), %d new", len(res.Comments), res.Inserted)
		if s := res.Stats; s.Duplicates+s.Truncated+s.Malformed > 0 {
			fmt.Printf(" (skipped: %d duplicate, %d too deep, %d malformed)", s.Duplicates, s.Truncated, s.Malformed)
		}
		fmt.Println()
		return nil
	},
}

func printComments(comments []model.Comment) {
	if len(comments) == 0 {
		fmt.Println("No comments.")
		return
	}
	for _, c := range comments {
		body := strings.ReplaceAll(c.Body, "\n", " ")
		if len(body) > 100 {
			body = body[:100] + "..."
		}
		fmt.Printf("%s%-8s  %s  u/%s: %s\n", strings.Repeat("  ", c.Depth), c.ID, c.FormattedDate, c.Author, body)
	}
}

// saved collection commands
var saveCmd = &cobra.Command{
	Use:   "save ID...",
	Short: "Save posts from the current search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Save")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Save(args)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d new post(s)\n", n)
		return nil
	},
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave ID",
	Short: "Remove a saved post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Unsave")
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Unsave(args[0])
	},
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f ruddit.SavedFilter
		f.Recent, _ = cmd.Flags().GetInt("recent")
		f.Facet, _ = cmd.Flags().GetString("facet")
		f.Community, _ = cmd.Flags().GetString("community")
		f.Term, _ = cmd.Flags().GetString("find")

		a, err := newApp(cmd.Context(), "ListSaved")
		if err != nil {
			return err
		}
		defer a.Close()

		posts, err := a.ListSaved(f)
		if err != nil {
			return err
		}
		printPosts(posts)
		return nil
	},
}

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Count saved posts per facet",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "FacetCounts")
		if err != nil {
			return err
		}
		defer a.Close()

		counts, err := a.FacetCounts()
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Printf("%-16s %d\n", c.Facet, c.Count)
		}
		saved, search, comments, err := a.Counts()
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved %d, current search %d, comments %d\n", saved, search, comments)
		return nil
	},
}

func target(cmd *cobra.Command, id string) app.Target {
	comment, _ := cmd.Flags().GetBool("comment")
	return app.Target{ID: id, Comment: comment}
}

var noteCmd = &cobra.Command{
	Use:   "note ID TEXT",
	Short: "Set notes on a saved post or stored comment",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "SetNotes")
		if err != nil {
			return err
		}
		defer a.Close()
		return a.SetNotes(target(cmd, args[0]), strings.Join(args[1:], " "))
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign ID NAME",
	Short: "Assign a saved post or stored comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "SetAssignee")
		if err != nil {
			return err
		}
		defer a.Close()
		return a.SetAssignee(target(cmd, args[0]), args[1])
	},
}

var engageCmd = &cobra.Command{
	Use:   "engage ID",
	Short: "Mark a saved post or stored comment as engaged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		off, _ := cmd.Flags().GetBool("off")

		a, err := newApp(cmd.Context(), "SetEngaged")
		if err != nil {
			return err
		}
		defer a.Close()
		return a.SetEngaged(target(cmd, args[0]), !off)
	},
}

var replyCmd = &cobra.Command{
	Use:   "reply THING TEXT",
	Short: "Reply to a post or comment as the configured account",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Reply")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Reply(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Posted %s\n", c.Permalink)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:       "clear saved|search|comments",
	Short:     "Empty a collection",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"saved", "search", "comments"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Clear")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Clear(args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", args[0])
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context(), "GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-15s  %s  %-10s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run configured watches on their schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetString("once")
		list, _ := cmd.Flags().GetBool("list")

		a, err := newApp(cmd.Context(), "Watch")
		if err != nil {
			return err
		}
		defer a.Close()

		switch {
		case list:
			entries, err := a.Watches()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%-16s %s\n", e.Name, e.Schedule)
			}
			return nil
		case once != "":
			report, err := a.RunWatchOnce(cmd.Context(), once)
			if report != nil {
				printReport(report)
			}
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Println("Running watches; Ctrl-C to stop.")
		return a.ServeWatches(ctx, func(name string, report *ruddit.WatchReport, err error) {
			if report != nil {
				printReport(report)
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "watch %s: %v\n", name, err)
			}
		})
	},
}

func printReport(r *ruddit.WatchReport) {
	fmt.Printf("%s  %s  fetched %d, matched %d, saved %d, comments %d\n",
		time.Now().Format(time.DateTime), r.Name, r.Fetched, r.Matched, r.Saved, r.Comments)
	for facet, err := range r.FailedFacets {
		fmt.Fprintf(os.Stderr, "  facet %s failed: %v\n", facet, err)
	}
	for post, err := range r.FailedThreads {
		fmt.Fprintf(os.Stderr, "  thread %s failed: %v\n", post, err)
	}
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Back up and restore the local database",
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a database snapshot to the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Backup")
		if err != nil {
			return err
		}
		if err := a.Backup(); err != nil {
			a.Close()
			return err
		}
		if err := a.Close(); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Println("Snapshot uploaded")
		return nil
	},
}

var dbRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the local database with the vault snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		version, err := app.RestoreDatabase(cmd.Context(), cfg, app.RestoreOptions{
			Passphrase: func() (string, error) { return readPassphrase("Passphrase: ") },
			Force:      force,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Restored snapshot version %d\n", version)
		return nil
	},
}

// encryption command
var encryptionCmd = &cobra.Command{
	Use:   "encryption",
	Short: "Manage snapshot encryption",
}

var encryptionSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate a passphrase-protected key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		pass, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return errors.New("passphrases do not match")
		}
		if err := app.SetupEncryption(cfg, path, pass); err != nil {
			return err
		}
		fmt.Printf("Keys written to %s and %s\n", cfg.Encryption.PublicKeyPath, cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configValidateCmd)

	// auth subcommands
	authCmd.AddCommand(authServiceCmd)
	authCmd.AddCommand(authUserCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)

	// db and encryption subcommands
	dbCmd.AddCommand(dbBackupCmd)
	dbCmd.AddCommand(dbRestoreCmd)
	dbRestoreCmd.Flags().Bool("force", false, "Replace a local database that is newer than the snapshot")
	encryptionCmd.AddCommand(encryptionSetupCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringSliceP("facet", "f", nil, "Facets to query (default from config)")
	searchCmd.Flags().IntP("pages", "p", 0, "Pages per facet (default from config)")
	searchCmd.Flags().StringP("community", "c", "", "Restrict a full-text search to one community")
	searchCmd.Flags().BoolP("append", "a", false, "Append to the current search instead of replacing it")
	searchCmd.Flags().String("after", "", "Fetch the page after this cursor for a single --facet and append it")
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(commentsCmd)
	commentsCmd.Flags().Bool("stored", false, "Show stored comments without fetching")
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(unsaveCmd)
	rootCmd.AddCommand(savedCmd)
	savedCmd.Flags().IntP("recent", "n", 0, "Show only the N most recently saved")
	savedCmd.Flags().String("facet", "", "Only posts seen under this facet")
	savedCmd.Flags().String("community", "", "Only posts from this community")
	savedCmd.Flags().String("find", "", "Only posts whose title, community or facets contain this text")
	rootCmd.AddCommand(facetsCmd)
	for _, c := range []*cobra.Command{noteCmd, assignCmd, engageCmd} {
		c.Flags().Bool("comment", false, "ID is a stored comment id")
		rootCmd.AddCommand(c)
	}
	engageCmd.Flags().Bool("off", false, "Clear the engaged flag")
	rootCmd.AddCommand(replyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("once", "", "Run the named watch once and exit")
	watchCmd.Flags().Bool("list", false, "List configured watches")
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(encryptionCmd)
}
