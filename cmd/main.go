// cmd/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invoice-builder/internal/archive"
	"github.com/invoice-builder/internal/config"
	"github.com/invoice-builder/internal/draft"
	"github.com/invoice-builder/internal/server"
	"github.com/invoice-builder/pkg/export"
	"github.com/invoice-builder/pkg/invoice"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "invoice",
		Usage: "build, review and export invoices",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"INVOICE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
			incrementCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the invoice session API",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			exp, cleanup, err := buildExporter(c.Context, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			session := invoice.NewSession(invoice.WithInvoiceNumber(cfg.Invoice.SeedNumber))
			srv := server.New(session, exp, server.Options{
				CurrencySymbol: cfg.Invoice.CurrencySymbol,
				ShowTax:        cfg.Invoice.ShowTax,
				AllowedOrigins: cfg.Server.CorsAllowedOrigins,
			})

			log.Printf("[Server] listening on %s", cfg.Addr())
			return srv.ListenAndServe(cfg.Addr())
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "export an invoice from a YAML draft",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "draft file", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory, overrides export.dir"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if out := c.String("out"); out != "" {
				cfg.Export.Dir = out
				cfg.Export.S3.Bucket = ""
			}
			if cfg.Export.Dir == "" && cfg.Export.S3.Bucket == "" {
				cfg.Export.Dir = "."
			}

			f, err := os.Open(c.String("in"))
			if err != nil {
				return err
			}
			defer f.Close()
			d, err := draft.Decode(f)
			if err != nil {
				return err
			}

			session := invoice.NewSession(invoice.WithInvoiceNumber(cfg.Invoice.SeedNumber))
			if err := d.Apply(session); err != nil {
				return err
			}
			if err := session.Review(); err != nil {
				if ve, ok := invoice.AsValidationError(err); ok {
					for _, fe := range ve.Fields {
						fmt.Fprintln(c.App.ErrWriter, fe.String())
					}
					return cli.Exit("draft is incomplete", 1)
				}
				return err
			}
			snap, err := session.Snapshot()
			if err != nil {
				return err
			}

			exp, cleanup, err := buildExporter(c.Context, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := exp.Export(c.Context, snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s\ttotal %s\tnext %s\n", res.Location,
				invoice.Money(cfg.Invoice.CurrencySymbol, invoice.FormatTotal(snap.Total)),
				invoice.IncrementString(snap.InvoiceNumber))
			return nil
		},
	}
}

func incrementCommand() *cli.Command {
	return &cli.Command{
		Name:      "increment",
		Usage:     "print the invoice number that follows each argument",
		ArgsUsage: "NUMBER...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one invoice number is required", 2)
			}
			for _, arg := range c.Args().Slice() {
				fmt.Fprintln(c.App.Writer, invoice.IncrementString(arg))
			}
			return nil
		},
	}
}

// buildExporter wires the PDF renderer to the configured store and ledger.
func buildExporter(ctx context.Context, cfg *config.Config) (*export.Exporter, func(), error) {
	exp := &export.Exporter{Renderer: export.PDFRenderer{ShowTax: cfg.Invoice.ShowTax}}
	cleanup := func() {}

	switch {
	case cfg.Export.S3.Bucket != "":
		s3cfg := cfg.Export.S3
		store, err := export.NewS3Store(ctx, export.S3Config{
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			Prefix:    s3cfg.Prefix,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		exp.Store = store
	case cfg.Export.Dir != "":
		dir, err := filepath.Abs(cfg.Export.Dir)
		if err != nil {
			return nil, nil, err
		}
		exp.Store = export.DirStore{Dir: dir}
	}

	if cfg.Archive.DSN != "" {
		ledger, err := archive.Open(ctx, cfg.Archive.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := ledger.Migrate(ctx); err != nil {
			ledger.Close()
			return nil, nil, err
		}
		exp.Recorder = ledger
		cleanup = func() {
			if err := ledger.Close(); err != nil {
				log.Printf("[Archive] close: %v", err)
			}
		}
	}
	return exp, cleanup, nil
}
