package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/departemen-if/kurikulum/internal/matkul"
)

func newMatkulCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matkul",
		Short: "Kelola mata kuliah dan relasinya ke CPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newMatkulListCommand(a))
	cmd.AddCommand(newMatkulGetCommand(a))
	cmd.AddCommand(newMatkulTambahCommand(a))
	cmd.AddCommand(newMatkulUbahCommand(a))
	cmd.AddCommand(newMatkulHapusCommand(a))
	return cmd
}

// parseCPLRefs menerima bentuk KURIKULUM:CPL, contoh: K-2024:CPL-01.
func parseCPLRefs(raw []string) ([]matkul.CPLInput, error) {
	refs := make([]matkul.CPLInput, 0, len(raw))
	for _, item := range raw {
		parts := strings.SplitN(item, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("format --cpl tidak valid: %q (pakai ID_KURIKULUM:ID_CPL)", item)
		}
		refs = append(refs, matkul.CPLInput{IDKurikulum: parts[0], IDCPL: parts[1]})
	}
	return refs, nil
}

func newMatkulListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Daftar seluruh mata kuliah",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			resp, err := a.matkul.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMATA KULIAH\tSKS\tSEMESTER\tCPL")
			for _, m := range resp.Data {
				kode := make([]string, 0, len(m.CPL))
				for _, ref := range m.CPL {
					kode = append(kode, ref.IDCPL)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", m.IDMatkul, m.MataKuliah, m.SKS, m.Semester, strings.Join(kode, ","))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("total: %d\n", len(resp.Data))
			return nil
		},
	}
}

func newMatkulGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id_matkul>",
		Short: "Detail mata kuliah beserta CPL dan indikatornya",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			detail, err := a.matkul.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			m := detail.MataKuliah
			fmt.Printf("id       : %s\nnama     : %s\nsks      : %d\nsemester : %d\n", m.IDMatkul, m.MataKuliah, m.SKS, m.Semester)
			if len(detail.CPL) == 0 {
				fmt.Println("cpl      : (kosong)")
				return nil
			}
			fmt.Println("cpl      :")
			for _, c := range detail.CPL {
				fmt.Printf("  %s/%s\t%s\n", c.IDKurikulum, c.IDCPL, c.Deskripsi)
				for _, ind := range c.Indikator {
					fmt.Printf("    %s\t%s\n", ind.IDIndikator, ind.Deskripsi)
				}
			}
			return nil
		},
	}
}

func newMatkulTambahCommand(a *app) *cobra.Command {
	var (
		req     matkul.CreateRequest
		cplRefs []string
	)

	cmd := &cobra.Command{
		Use:   "tambah",
		Short: "Tambah mata kuliah baru",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}

			refs, err := parseCPLRefs(cplRefs)
			if err != nil {
				return err
			}
			req.CPLList = refs

			resp, err := a.matkul.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s, %d relasi)\n", resp.Message, resp.Matkul.IDMatkul, len(resp.Relasi))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.IDMatkul, "id", "", "kode mata kuliah, contoh: IF1101")
	cmd.Flags().StringVar(&req.MataKuliah, "nama", "", "nama mata kuliah")
	cmd.Flags().IntVar(&req.SKS, "sks", 0, "bobot sks")
	cmd.Flags().IntVar(&req.Semester, "semester", 0, "semester penawaran")
	cmd.Flags().StringArrayVar(&cplRefs, "cpl", nil, "CPL yang dipenuhi, format ID_KURIKULUM:ID_CPL (boleh berulang)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("nama")
	_ = cmd.MarkFlagRequired("sks")
	_ = cmd.MarkFlagRequired("semester")
	return cmd
}

func newMatkulUbahCommand(a *app) *cobra.Command {
	var (
		nama     string
		sks      int
		semester int
		cplRefs  []string
	)

	cmd := &cobra.Command{
		Use:   "ubah <id_matkul>",
		Short: "Ubah sebagian field mata kuliah",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}

			var req matkul.UpdateRequest
			if cmd.Flags().Changed("nama") {
				req.MataKuliah = &nama
			}
			if cmd.Flags().Changed("sks") {
				req.SKS = &sks
			}
			if cmd.Flags().Changed("semester") {
				req.Semester = &semester
			}
			if cmd.Flags().Changed("cpl") {
				refs, err := parseCPLRefs(cplRefs)
				if err != nil {
					return err
				}
				req.CPLList = refs
			}

			resp, err := a.matkul.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&nama, "nama", "", "nama mata kuliah")
	cmd.Flags().IntVar(&sks, "sks", 0, "bobot sks")
	cmd.Flags().IntVar(&semester, "semester", 0, "semester penawaran")
	cmd.Flags().StringArrayVar(&cplRefs, "cpl", nil, "pengganti daftar relasi CPL, format ID_KURIKULUM:ID_CPL")
	return cmd
}

func newMatkulHapusCommand(a *app) *cobra.Command {
	var yakin bool

	cmd := &cobra.Command{
		Use:   "hapus <id_matkul>",
		Short: "Hapus mata kuliah beserta relasinya",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireKadep(); err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("hapus mata kuliah %s?", args[0]), yakin) {
				fmt.Println("dibatalkan")
				return nil
			}
			if err := a.matkul.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("mata kuliah berhasil dihapus")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yakin, "yakin", false, "lewati konfirmasi")
	return cmd
}
