package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/departemen-if/kurikulum/internal/cpl"
)

func newCPLCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpl",
		Short: "Kelola capaian pembelajaran lulusan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCPLListCommand(a))
	cmd.AddCommand(newCPLGetCommand(a))
	cmd.AddCommand(newCPLTambahCommand(a))
	cmd.AddCommand(newCPLUbahCommand(a))
	cmd.AddCommand(newCPLHapusCommand(a))
	return cmd
}

func newCPLListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Daftar CPL dari kurikulum aktif",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			resp, err := a.cpl.ListActive(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KODE\tDESKRIPSI\tKURIKULUM")
			for _, item := range resp.Data {
				kur := "-"
				if item.Kurikulum != nil {
					kur = item.Kurikulum.NamaKurikulum + " (" + item.Kurikulum.Revisi + ")"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", item.IDCPL, item.Deskripsi, kur)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("total: %d\n", resp.Total)
			return nil
		},
	}
}

func printCPLDetail(detail *cpl.DetailResponse) {
	fmt.Printf("kode      : %s\ndeskripsi : %s\n", detail.CPL.IDCPL, detail.CPL.Deskripsi)
	if detail.Kurikulum != nil {
		fmt.Printf("kurikulum : %s (%s)\n", detail.Kurikulum.NamaKurikulum, detail.Kurikulum.Revisi)
	}

	if len(detail.Indikator) == 0 {
		fmt.Println("indikator : (kosong)")
	} else {
		fmt.Println("indikator :")
		for _, ind := range detail.Indikator {
			fmt.Printf("  %s\t%s\n", ind.IDIndikator, ind.Deskripsi)
		}
	}

	if len(detail.MataKuliah) == 0 {
		fmt.Println("mata kuliah: (kosong)")
		return
	}
	fmt.Println("mata kuliah:")
	for _, m := range detail.MataKuliah {
		fmt.Printf("  %s\t%s\t%d sks\tsemester %d\n", m.IDMatkul, m.MataKuliah, m.SKS, m.Semester)
	}
}

func newCPLGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id_kurikulum> <id_cpl>",
		Short: "Detail satu CPL: kurikulum, indikator, dan mata kuliahnya",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			detail, err := a.cpl.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printCPLDetail(detail)
			return nil
		},
	}
}

func newCPLTambahCommand(a *app) *cobra.Command {
	var req cpl.CreateRequest

	cmd := &cobra.Command{
		Use:   "tambah <id_kurikulum>",
		Short: "Tambah CPL pada kurikulum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			resp, err := a.cpl.Create(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", resp.Message, resp.CPL.IDCPL)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.IDCPL, "kode", "", "kode CPL, contoh: CPL-01")
	cmd.Flags().StringVar(&req.Deskripsi, "deskripsi", "", "deskripsi capaian")
	_ = cmd.MarkFlagRequired("kode")
	_ = cmd.MarkFlagRequired("deskripsi")
	return cmd
}

func newCPLUbahCommand(a *app) *cobra.Command {
	var deskripsi string

	cmd := &cobra.Command{
		Use:   "ubah <id_kurikulum> <id_cpl>",
		Short: "Ubah deskripsi CPL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			resp, err := a.cpl.Update(cmd.Context(), args[0], args[1], cpl.UpdateRequest{Deskripsi: &deskripsi})
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

func newCPLHapusCommand(a *app) *cobra.Command {
	var yakin bool

	cmd := &cobra.Command{
		Use:   "hapus <id_kurikulum> <id_cpl>",
		Short: "Hapus CPL beserta seluruh indikatornya",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("hapus %s beserta indikatornya?", args[1]), yakin) {
				fmt.Println("dibatalkan")
				return nil
			}
			if err := a.cpl.Delete(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("CPL berhasil dihapus")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yakin, "yakin", false, "lewati konfirmasi")
	return cmd
}
