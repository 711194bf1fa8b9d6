package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/departemen-if/kurikulum/internal/kurikulum"
)

func newKurikulumCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kurikulum",
		Short: "Kelola kurikulum",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newKurikulumListCommand(a))
	cmd.AddCommand(newKurikulumGetCommand(a))
	cmd.AddCommand(newKurikulumTambahCommand(a))
	cmd.AddCommand(newKurikulumUbahCommand(a))
	return cmd
}

func newKurikulumListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Daftar seluruh kurikulum",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			resp, err := a.kurikulum.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAMA\tREVISI\tSTATUS")
			for _, k := range resp.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k.IDKurikulum, k.NamaKurikulum, k.Revisi, k.StatusKurikulum)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("total: %d\n", resp.Total)
			return nil
		},
	}
}

func newKurikulumGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id_kurikulum>",
		Short: "Detail satu kurikulum beserta CPL-nya",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			resp, err := a.kurikulum.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			k := resp.Kurikulum
			fmt.Printf("id     : %s\nnama   : %s\nrevisi : %s\nstatus : %s\n", k.IDKurikulum, k.NamaKurikulum, k.Revisi, k.StatusKurikulum)
			if len(k.CPL) == 0 {
				fmt.Println("cpl    : (kosong)")
				return nil
			}
			fmt.Println("cpl    :")
			for _, c := range k.CPL {
				fmt.Printf("  %s\t%s\n", c.IDCPL, c.Deskripsi)
			}
			return nil
		},
	}
}

func newKurikulumTambahCommand(a *app) *cobra.Command {
	var req kurikulum.CreateRequest

	cmd := &cobra.Command{
		Use:   "tambah",
		Short: "Tambah kurikulum baru",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			resp, err := a.kurikulum.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("%s (id: %s)\n", resp.Message, resp.Kurikulum.IDKurikulum)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.NamaKurikulum, "nama", "", "nama kurikulum")
	cmd.Flags().StringVar(&req.Revisi, "revisi", "", "label revisi")
	cmd.Flags().StringVar(&req.StatusKurikulum, "status", kurikulum.StatusAktif, "Aktif atau Nonaktif")
	_ = cmd.MarkFlagRequired("nama")
	_ = cmd.MarkFlagRequired("revisi")
	return cmd
}

func newKurikulumUbahCommand(a *app) *cobra.Command {
	var (
		nama   string
		revisi string
		status string
	)

	cmd := &cobra.Command{
		Use:   "ubah <id_kurikulum>",
		Short: "Ubah sebagian field kurikulum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}

			var req kurikulum.UpdateRequest
			if cmd.Flags().Changed("nama") {
				req.NamaKurikulum = &nama
			}
			if cmd.Flags().Changed("revisi") {
				req.Revisi = &revisi
			}
			if cmd.Flags().Changed("status") {
				req.StatusKurikulum = &status
			}

			resp, err := a.kurikulum.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&nama, "nama", "", "nama kurikulum")
	cmd.Flags().StringVar(&revisi, "revisi", "", "label revisi")
	cmd.Flags().StringVar(&status, "status", "", "Aktif atau Nonaktif")
	return cmd
}
