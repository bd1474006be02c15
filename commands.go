package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"cbat/pkg/config"
	"cbat/pkg/exchanges/coinbase"
	"cbat/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type app struct {
	cfg *config.Config
}

func newApp() *cli.App {
	a := &app{}
	return &cli.App{
		Name:  "cbat",
		Usage: "Coinbase Advanced Trade REST client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"CBAT_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:   "accounts",
				Usage:  "list accounts",
				Action: a.accounts,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit"},
					&cli.StringFlag{Name: "cursor"},
				},
			},
			{
				Name:      "account",
				Usage:     "get account",
				ArgsUsage: "<account uuid>",
				Action:    a.account,
			},
			{
				Name:      "trades",
				Usage:     "get public market trades",
				ArgsUsage: "<product id>",
				Action:    a.trades,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 100},
					&cli.StringFlag{Name: "start"},
					&cli.StringFlag{Name: "end"},
				},
			},
			{
				Name:      "best-bid-ask",
				Usage:     "get best bid/ask",
				ArgsUsage: "[product id...]",
				Action:    a.bestBidAsk,
			},
			{
				Name:      "book",
				Usage:     "get public product book",
				ArgsUsage: "<product id>",
				Action:    a.book,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit"},
					&cli.StringFlag{Name: "aggregation-price-increment"},
				},
			},
			{
				Name:      "candles",
				Usage:     "get public product candles",
				ArgsUsage: "<product id>",
				Action:    a.candles,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "granularity", Value: "1h", Usage: "1m, 5m, 15m, 30m, 1h, 2h, 6h, 1d"},
					&cli.DurationFlag{Name: "since", Value: 24 * time.Hour, Usage: "window ending now, ignored when --start is set"},
					&cli.StringFlag{Name: "start", Usage: "UNIX seconds"},
					&cli.StringFlag{Name: "end", Usage: "UNIX seconds"},
					&cli.IntFlag{Name: "limit"},
				},
			},
			{
				Name:      "product",
				Usage:     "get public product",
				ArgsUsage: "<product id>",
				Action:    a.product,
			},
			{
				Name:   "products",
				Usage:  "list public products",
				Action: a.products,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit"},
					&cli.IntFlag{Name: "offset"},
					&cli.StringFlag{Name: "product-type"},
					&cli.StringSliceFlag{Name: "product-id"},
					&cli.StringFlag{Name: "contract-expiry-type"},
					&cli.StringFlag{Name: "expiring-contract-status"},
					&cli.BoolFlag{Name: "all"},
				},
			},
			{
				Name:   "time",
				Usage:  "get public server time",
				Action: a.serverTime,
			},
		},
	}
}

func (a *app) before(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFile)
	logrus.Debugf("using %s", cfg.BaseURL)
	a.cfg = cfg
	return nil
}

// publicClient 只访问公共接口，不需要凭证
func (a *app) publicClient() (*coinbase.Coinbase, error) {
	return coinbase.New(a.cfg.Exchange(), nil)
}

// privateClient 缺少凭证或私钥无效时立即失败，不发出任何请求
func (a *app) privateClient() (*coinbase.Coinbase, error) {
	creds, err := a.cfg.Credentials()
	if err != nil {
		return nil, err
	}
	return coinbase.NewWithCredentials(a.cfg.Exchange(), creds)
}

func (a *app) accounts(c *cli.Context) error {
	client, err := a.privateClient()
	if err != nil {
		return err
	}
	params := &coinbase.ListAccountsParams{Cursor: c.String("cursor")}
	if c.IsSet("limit") {
		params.Limit = coinbase.Int(c.Int("limit"))
	}
	accounts, err := client.ListAccounts(c.Context, params)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, accounts)
}

func (a *app) account(c *cli.Context) error {
	id, err := requireArg(c, "account uuid")
	if err != nil {
		return err
	}
	client, err := a.privateClient()
	if err != nil {
		return err
	}
	account, err := client.GetAccount(c.Context, id)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, account)
}

func (a *app) trades(c *cli.Context) error {
	productID, err := requireArg(c, "product id")
	if err != nil {
		return err
	}
	client, err := a.publicClient()
	if err != nil {
		return err
	}
	trades, err := client.GetPublicMarketTrades(c.Context, productID, coinbase.MarketTradesParams{
		Limit: c.Int("limit"),
		Start: c.String("start"),
		End:   c.String("end"),
	})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, trades)
}

func (a *app) bestBidAsk(c *cli.Context) error {
	client, err := a.privateClient()
	if err != nil {
		return err
	}
	books, err := client.GetBestBidAsk(c.Context, c.Args().Slice())
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, books)
}

func (a *app) book(c *cli.Context) error {
	productID, err := requireArg(c, "product id")
	if err != nil {
		return err
	}
	client, err := a.publicClient()
	if err != nil {
		return err
	}
	params := coinbase.ProductBookParams{
		ProductID:                 productID,
		AggregationPriceIncrement: c.String("aggregation-price-increment"),
	}
	if c.IsSet("limit") {
		params.Limit = coinbase.Int(c.Int("limit"))
	}
	book, err := client.GetPublicProductBook(c.Context, params)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, book)
}

func (a *app) candles(c *cli.Context) error {
	productID, err := requireArg(c, "product id")
	if err != nil {
		return err
	}
	granularity, ok := coinbase.ParseGranularity(c.String("granularity"))
	if !ok {
		return fmt.Errorf("unknown granularity: %s", c.String("granularity"))
	}
	now := time.Now()
	start, end := c.String("start"), c.String("end")
	if end == "" {
		end = strconv.FormatInt(now.Unix(), 10)
	}
	if start == "" {
		start = strconv.FormatInt(now.Add(-c.Duration("since")).Unix(), 10)
	}

	client, err := a.publicClient()
	if err != nil {
		return err
	}
	params := coinbase.ProductCandlesParams{Start: start, End: end, Granularity: granularity}
	if c.IsSet("limit") {
		params.Limit = coinbase.Int(c.Int("limit"))
	}
	candles, err := client.GetPublicProductCandles(c.Context, productID, params)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, candles)
}

func (a *app) product(c *cli.Context) error {
	productID, err := requireArg(c, "product id")
	if err != nil {
		return err
	}
	client, err := a.publicClient()
	if err != nil {
		return err
	}
	product, err := client.GetPublicProduct(c.Context, productID)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, product)
}

func (a *app) products(c *cli.Context) error {
	client, err := a.publicClient()
	if err != nil {
		return err
	}
	params := &coinbase.ListProductsParams{
		ProductType:            coinbase.ProductType(c.String("product-type")),
		ProductIDs:             c.StringSlice("product-id"),
		ContractExpiryType:     coinbase.ContractExpiryType(c.String("contract-expiry-type")),
		ExpiringContractStatus: coinbase.ExpiringContractStatus(c.String("expiring-contract-status")),
	}
	if c.IsSet("limit") {
		params.Limit = coinbase.Int(c.Int("limit"))
	}
	if c.IsSet("offset") {
		params.Offset = coinbase.Int(c.Int("offset"))
	}
	if c.IsSet("all") {
		params.GetAllProducts = coinbase.Bool(c.Bool("all"))
	}
	products, err := client.ListPublicProducts(c.Context, params)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, products)
}

func (a *app) serverTime(c *cli.Context) error {
	client, err := a.publicClient()
	if err != nil {
		return err
	}
	serverTime, err := client.GetPublicServerTime(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, serverTime)
}

func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("missing %s", name)
	}
	return c.Args().First(), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
