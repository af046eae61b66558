package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-firform/pkg/app"
	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/report"
)

var (
	reportQuery  app.ReportQuery
	deleteYes    bool
	exportFormat string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Register(cmd.Context())
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := application.Login(cmd.Context()); err != nil {
			return err
		}
		_, err := application.Dashboard(cmd.Context())
		return err
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Logout(cmd.Context())
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the signed-in user and FIR totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.Dashboard(cmd.Context())
		return err
	},
}

var firCmd = &cobra.Command{
	Use:   "fir",
	Short: "File or edit FIRs",
}

var firNewCmd = &cobra.Command{
	Use:   "new",
	Short: "File a new FIR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := application.NewFIR(cmd.Context())
		if err != nil {
			return err
		}
		return listAfterSave(cmd, saved)
	},
}

var firEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a stored FIR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := application.EditFIR(cmd.Context(), fir.ID(args[0]))
		if err != nil {
			return err
		}
		return listAfterSave(cmd, saved)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Browse, inspect, delete and export FIRs",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List FIRs as a table",
	Long: `List FIRs as a table.

--sort takes a column key (id, firNumber, district, policeStation,
complainantName, dateTime); prefix it with "-" to sort descending.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.Reports(cmd.Context(), reportQuery)
		return err
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of one FIR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.ShowFIR(cmd.Context(), fir.ID(args[0]))
		return err
	},
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a FIR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.DeleteFIR(cmd.Context(), fir.ID(args[0]), deleteYes)
	},
}

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every FIR to Excel or PDF",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := report.ParseFormat(exportFormat)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := application.Export(cmd.Context(), report.Format(exportFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.ShowProfile(cmd.Context())
		return err
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.EditProfile(cmd.Context())
		return err
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme <light|dark>",
	Short:     "Switch the terminal theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := application.SetTheme(cmd.Context(), args[0])
		return err
	},
}

func registerCommands(root *cobra.Command) {
	reportListCmd.Flags().StringVar(&reportQuery.Search, "search", "", "free-text search over every field")
	reportListCmd.Flags().StringVar(&reportQuery.Sort, "sort", "", "column key to sort by")
	reportListCmd.Flags().IntVar(&reportQuery.Page, "page", 1, "page number")

	reportDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	reportExportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(report.FormatXLSX), "xlsx or pdf")
	reportExportCmd.Flags().StringVarP(&cfg.ExportDir, "out", "o", cfg.ExportDir, "output directory (FIR_EXPORT_DIR)")

	firCmd.AddCommand(firNewCmd, firEditCmd)
	reportCmd.AddCommand(reportListCmd, reportShowCmd, reportDeleteCmd, reportExportCmd)
	profileCmd.AddCommand(profileShowCmd, profileEditCmd)

	root.AddCommand(
		registerCmd,
		loginCmd,
		logoutCmd,
		dashboardCmd,
		firCmd,
		reportCmd,
		profileCmd,
		themeCmd,
	)
}

// listAfterSave shows the report after a FIR was stored.
func listAfterSave(cmd *cobra.Command, saved fir.Record) error {
	if saved.FIRNumber != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s saved\n", saved.FIRNumber)
	}
	_, err := application.Reports(cmd.Context(), app.ReportQuery{})
	return err
}
