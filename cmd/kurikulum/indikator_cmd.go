package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/departemen-if/kurikulum/internal/indikator"
)

func newIndikatorCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indikator",
		Short: "Kelola indikator sebuah CPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newIndikatorTambahCommand(a))
	cmd.AddCommand(newIndikatorGetCommand(a))
	cmd.AddCommand(newIndikatorUbahCommand(a))
	cmd.AddCommand(newIndikatorHapusCommand(a))
	return cmd
}

func newIndikatorTambahCommand(a *app) *cobra.Command {
	var req indikator.CreateRequest

	cmd := &cobra.Command{
		Use:   "tambah <id_kurikulum> <id_cpl>",
		Short: "Tambah indikator pada CPL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			resp, err := a.indikator.Create(cmd.Context(), args[0], args[1], req)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", resp.Message, resp.Indikator.IDIndikator)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.IDIndikator, "kode", "", "kode indikator, contoh: IND-01-01")
	cmd.Flags().StringVar(&req.Deskripsi, "deskripsi", "", "deskripsi indikator")
	_ = cmd.MarkFlagRequired("kode")
	_ = cmd.MarkFlagRequired("deskripsi")
	return cmd
}

func newIndikatorGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id_kurikulum> <id_cpl> <id_indikator>",
		Short: "Detail satu indikator",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ind, err := a.indikator.Get(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("kode      : %s\ndeskripsi : %s\n", ind.IDIndikator, ind.Deskripsi)
			return nil
		},
	}
}

func newIndikatorUbahCommand(a *app) *cobra.Command {
	var deskripsi string

	cmd := &cobra.Command{
		Use:   "ubah <id_kurikulum> <id_cpl> <id_indikator>",
		Short: "Ubah deskripsi indikator",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			resp, err := a.indikator.Update(cmd.Context(), args[0], args[1], args[2],
				indikator.UpdateRequest{Deskripsi: &deskripsi})
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&deskripsi, "deskripsi", "", "deskripsi baru")
	_ = cmd.MarkFlagRequired("deskripsi")
	return cmd
}

func newIndikatorHapusCommand(a *app) *cobra.Command {
	var yakin bool

	cmd := &cobra.Command{
		Use:   "hapus <id_kurikulum> <id_cpl> <id_indikator>",
		Short: "Hapus indikator lalu tampilkan detail CPL terbaru",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("hapus indikator %s?", args[2]), yakin) {
				fmt.Println("dibatalkan")
				return nil
			}

			if err := a.indikator.Delete(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("indikator berhasil dihapus")

			// Ambil ulang detail CPL setelah mutasi teramati, supaya
			// yang tampil pasti mencerminkan hasil penghapusan.
			detail, err := a.cpl.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printCPLDetail(detail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yakin, "yakin", false, "lewati konfirmasi")
	return cmd
}
