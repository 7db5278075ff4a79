package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/profiles"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored profiles",
	Long:  `Import, update, list, show and delete profiles kept in the configured storage backend.`,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a markdown or JSON profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileImport,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update <id> <file>",
	Short: "Store a new version of a profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileUpdate,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a profile and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

var (
	profileReason  string
	profileVersion int
)

func init() {
	profileUpdateCmd.Flags().StringVar(&profileReason, "reason", "", "Why the profile changed")
	profileShowCmd.Flags().IntVar(&profileVersion, "version", 0, "Show an earlier version (default: current)")

	profileCmd.AddCommand(profileImportCmd, profileUpdateCmd, profileListCmd, profileShowCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileImport(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openProfiles(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	p, warnings, err := svc.Import(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Imported %s as profile %s\n", p.Data.PersonalInfo.Name.Full, p.ID)
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openProfiles(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := parsing.LoadFile(args[1])
	if err != nil {
		return err
	}
	p, err := svc.Update(cmd.Context(), args[0], res.Data, profileReason)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Profile %s is now at version %d\n", p.ID, p.Version)
	for _, c := range p.Changes {
		_, _ = fmt.Fprintf(os.Stdout, "  %s: %s\n", c.Field, c.Note)
	}
	return nil
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := openProfiles(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	list, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No profiles stored")
		return nil
	}
	printProfiles(list)
	return nil
}

func printProfiles(list []profiles.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tOWNER\tVERSION\tUPDATED")
	for _, s := range list {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Owner, s.Version, s.Updated.Format(time.RFC3339))
	}
	_ = w.Flush()
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openProfiles(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	var p *profiles.Profile
	if profileVersion > 0 {
		p, err = svc.GetVersion(cmd.Context(), args[0], profileVersion)
	} else {
		p, err = svc.Get(cmd.Context(), args[0])
	}
	if err != nil {
		return err
	}
	return printJSON(p)
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openProfiles(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	if _, err := svc.Get(cmd.Context(), args[0]); err != nil {
		return err
	}
	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Deleted profile %s\n", args[0])
	return nil
}
