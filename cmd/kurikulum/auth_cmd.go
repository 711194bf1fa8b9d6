package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var (
		userID   string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Masuk dengan user_id dan password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Print("Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := a.session.Login(cmd.Context(), userID, password); err != nil {
				return err
			}

			user := a.session.User()
			if user == nil {
				fmt.Println("login berhasil")
				return nil
			}
			fmt.Printf("selamat datang, %s (%s)\n", user.Nama, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user_id akun")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (ditanya bila kosong)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Keluar dan hapus token lokal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout(cmd.Context())
			fmt.Println("logout berhasil")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Tampilkan identitas sesi saat ini",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.session.User()
			if user == nil {
				fmt.Println("anonim (belum login)")
				return nil
			}
			fmt.Printf("user_id : %s\nnama    : %s\nrole    : %s\n", user.UserID, user.Nama, user.Role)
			return nil
		},
	}
}
