package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hutarka-ai/hutarka/pkg/cli/config"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/service/catalog"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const seedConcurrency = 4

type seedFile struct {
	Products []seedProduct `toml:"products"`
}

type seedProduct struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

func cmdSeed() *cli.Command {
	var path string
	var geminiCfg config.Gemini
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "products",
			Usage:       "Path to the product catalog TOML file",
			Required:    true,
			Sources:     cli.EnvVars("HUTARKA_PRODUCTS"),
			Destination: &path,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Embed and load the product catalog into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			data, err := os.ReadFile(path)
			if err != nil {
				return goerr.Wrap(err, "failed to read product file", goerr.V("path", path))
			}

			var file seedFile
			if err := toml.Unmarshal(data, &file); err != nil {
				return goerr.Wrap(err, "failed to parse product file", goerr.V("path", path))
			}
			if len(file.Products) == 0 {
				return goerr.New("product file contains no products", goerr.V("path", path))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			embeddingClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure embedding client")
			}
			if embeddingClient == nil {
				return goerr.New("gemini-project is required for seeding")
			}

			catalogSvc, err := catalog.New(embeddingClient, repo)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize catalog service")
			}

			eg, egCtx := errgroup.WithContext(ctx)
			eg.SetLimit(seedConcurrency)

			for _, p := range file.Products {
				product := &model.Product{
					ID:          p.ID,
					Name:        p.Name,
					Description: p.Description,
				}
				if err := product.Validate(); err != nil {
					return goerr.Wrap(err, "invalid product entry", goerr.V("id", p.ID))
				}

				eg.Go(func() error {
					embedding, err := catalogSvc.Embed(egCtx, product.EmbeddingText())
					if err != nil {
						return goerr.Wrap(err, "failed to embed product", goerr.V("id", product.ID))
					}
					product.Embedding = embedding

					if err := repo.PutProduct(egCtx, product); err != nil {
						return goerr.Wrap(err, "failed to store product", goerr.V("id", product.ID))
					}

					logger.Info("product stored", "id", product.ID, "name", product.Name)
					return nil
				})
			}

			if err := eg.Wait(); err != nil {
				return err
			}

			logger.Info("catalog seeded", "count", len(file.Products))
			return nil
		},
	}
}
