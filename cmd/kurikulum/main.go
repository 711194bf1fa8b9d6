// kurikulum adalah CLI untuk pengelolaan kurikulum, CPL, indikator,
// dan mata kuliah terhadap backend departemen.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/auth"
	"github.com/departemen-if/kurikulum/internal/config"
	"github.com/departemen-if/kurikulum/internal/cpl"
	"github.com/departemen-if/kurikulum/internal/indikator"
	"github.com/departemen-if/kurikulum/internal/kurikulum"
	"github.com/departemen-if/kurikulum/internal/matkul"
	"github.com/departemen-if/kurikulum/internal/session"
	"github.com/departemen-if/kurikulum/internal/token"
)

// app memegang seluruh dependensi yang dibagi antar perintah.
type app struct {
	session   *session.Context
	gateway   *auth.Gateway
	kurikulum *kurikulum.Service
	cpl       *cpl.Service
	indikator *indikator.Service
	matkul    *matkul.Service
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "galat: %v\n", err)
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	tokens, err := token.NewStore(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	client, err := api.New(api.Config{BaseURL: cfg.BaseURL, Tokens: tokens, Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, err
	}

	gateway := auth.NewGateway(client, tokens)
	return &app{
		session:   session.New(gateway),
		gateway:   gateway,
		kurikulum: kurikulum.NewService(client),
		cpl:       cpl.NewService(client),
		indikator: indikator.NewService(client),
		matkul:    matkul.NewService(client),
	}, nil
}

func newRootCommand() *cobra.Command {
	var a *app

	cmd := &cobra.Command{
		Use:           "kurikulum",
		Short:         "Pengelolaan kurikulum, CPL, indikator, dan mata kuliah",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newApp()
			if err != nil {
				return err
			}
			*a = *built
			a.session.Bootstrap(cmd.Context())
			return nil
		},
	}

	a = &app{}
	cmd.AddCommand(newLoginCommand(a))
	cmd.AddCommand(newLogoutCommand(a))
	cmd.AddCommand(newWhoamiCommand(a))
	cmd.AddCommand(newKurikulumCommand(a))
	cmd.AddCommand(newCPLCommand(a))
	cmd.AddCommand(newIndikatorCommand(a))
	cmd.AddCommand(newMatkulCommand(a))
	return cmd
}

// requireKadep adalah pagar UX di sisi klien; otorisasi sesungguhnya
// tetap diputuskan server pada setiap permintaan.
func (a *app) requireKadep() error {
	user := a.session.User()
	if user == nil {
		return errors.New("belum login; jalankan: kurikulum login")
	}
	if user.Role != auth.RoleKadep {
		return errors.New("aksi ini memerlukan peran kadep")
	}
	return nil
}

func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return errors.New("belum login; jalankan: kurikulum login")
	}
	return nil
}

// confirm meminta konfirmasi y/t dari stdin kecuali --yakin diberikan.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/T]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "ya"
}
