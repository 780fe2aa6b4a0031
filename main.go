package main

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/lagoslakes/flownet/network"
	"github.com/lagoslakes/flownet/pg"
	"github.com/lagoslakes/flownet/watershed"
)

var (
	appName = "flownet"
	appSha  = "populated-at-link-time"
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	app := cli.NewApp()
	app.Name = appName
	app.Usage = "connectivity analysis for a drainage subregion flow network"

	sourceFlag := cli.StringFlag{
		Name:  "source-uri",
		Usage: "The URI for connecting to the subregion source (supported URIs: postgresql://user@host:5432/subregion?sslmode=disable)",
	}

	app.Commands = []cli.Command{
		{
			Name:  "classify",
			Usage: "classify every lake's connectivity (maximum and permanent-only) and write a CSV table",
			Flags: []cli.Flag{
				sourceFlag,
				cli.StringFlag{Name: "output", Usage: "path for the output CSV table"},
				cli.StringFlag{Name: "force-pop", Usage: "optional file with externally defined lake ids, one per line"},
			},
			Action: func(c *cli.Context) error { return runClassify(c, logger) },
		},
		{
			Name:  "trace",
			Usage: "trace the network up or down from a waterbody",
			Flags: []cli.Flag{
				sourceFlag,
				cli.StringFlag{Name: "waterbody", Usage: "permanent identifier of the waterbody to trace from"},
				cli.StringFlag{Name: "direction", Value: "up", Usage: "trace direction: up or down"},
				cli.StringFlag{Name: "export", Usage: "optional output table for saving the traced flowline selection"},
			},
			Action: func(c *cli.Context) error { return runTrace(c, logger) },
		},
		{
			Name:  "erasable",
			Usage: "compute the interlake erasable regions for the given focal lakes",
			Flags: []cli.Flag{
				sourceFlag,
				cli.StringFlag{Name: "lakes", Usage: "comma-separated focal lake permanent identifiers"},
			},
			Action: func(c *cli.Context) error { return runErasable(c, logger) },
		},
		{
			Name:   "outlets",
			Usage:  "identify the subregion outlets and inlets",
			Flags:  []cli.Flag{sourceFlag},
			Action: func(c *cli.Context) error { return runOutlets(c, logger) },
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
}

// getSource returns a subregion source for the provided URI.
func getSource(sourceURI string, logger *logrus.Entry) (*pg.Source, error) {
	if sourceURI == "" {
		return nil, fmt.Errorf("subregion source must be specified with --source-uri")
	}

	uri, err := url.Parse(sourceURI)
	if err != nil {
		return nil, fmt.Errorf("could not parse source URI: %w", err)
	}

	switch uri.Scheme {
	case "postgresql":
		logger.Info("using postgres source")
		return pg.NewSource(sourceURI)
	default:
		return nil, fmt.Errorf("unsupported source URI scheme: %q", uri.Scheme)
	}
}

func runClassify(c *cli.Context, logger *logrus.Entry) error {
	src, err := getSource(c.String("source-uri"), logger)
	if err != nil {
		return err
	}
	defer src.Close()

	var force []network.ID
	if path := c.String("force-pop"); path != "" {
		if force, err = readIDFile(path); err != nil {
			return err
		}
	}

	n := watershed.NewNetwork(src, logger.WithField("subcommand", "classify"))
	records, err := n.ConnectivityReport(force)
	if err != nil {
		return err
	}

	outputPath := c.String("output")
	if outputPath == "" {
		return fmt.Errorf("output CSV path must be specified with --output")
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"permanent_identifier", "nhdplusid",
		"lake_connectivity_class", "lake_connectivity_permanent", "lake_connectivity_fluctuates",
	}
	if err = w.Write(header); err != nil {
		return fmt.Errorf("write output table: %w", err)
	}
	for _, rec := range records {
		fluctuates := "N"
		if rec.Fluctuates {
			fluctuates = "Y"
		}
		row := []string{
			string(rec.WaterbodyID),
			strconv.FormatInt(rec.NumericID, 10),
			string(rec.MaxClass),
			string(rec.PermanentClass),
			fluctuates,
		}
		if err = w.Write(row); err != nil {
			return fmt.Errorf("write output table: %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("write output table: %w", err)
	}

	logger.WithField("lakes", len(records)).Info("connectivity table written")
	return nil
}

func runTrace(c *cli.Context, logger *logrus.Entry) error {
	src, err := getSource(c.String("source-uri"), logger)
	if err != nil {
		return err
	}
	defer src.Close()

	waterbody := network.ID(c.String("waterbody"))
	if waterbody.IsNull() {
		return fmt.Errorf("waterbody id must be specified with --waterbody")
	}

	n := watershed.NewNetwork(src, logger.WithField("subcommand", "trace"))
	var tr watershed.Trace
	switch direction := c.String("direction"); direction {
	case "up":
		tr, err = n.UpFromWaterbody(waterbody, watershed.NoBarriers())
	case "down":
		tr, err = n.DownFromWaterbody(waterbody, watershed.NoBarriers())
	default:
		return fmt.Errorf("unsupported direction %q (valid: up, down)", direction)
	}
	if err != nil {
		return err
	}

	for _, id := range tr.IDs() {
		fmt.Println(id)
	}

	if table := c.String("export"); table != "" {
		if err = n.SaveTrace(src, table, tr); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"table": table, "ids": len(tr)}).Info("trace selection exported")
	}
	return nil
}

func runErasable(c *cli.Context, logger *logrus.Entry) error {
	src, err := getSource(c.String("source-uri"), logger)
	if err != nil {
		return err
	}
	defer src.Close()

	var focal []network.ID
	for _, raw := range strings.Split(c.String("lakes"), ",") {
		if id := strings.TrimSpace(raw); id != "" {
			focal = append(focal, network.ID(id))
		}
	}

	n := watershed.NewNetwork(src, logger.WithField("subcommand", "erasable"))
	erasable, err := n.InterlakeErasable(focal)
	if err != nil {
		return err
	}

	for _, lakeID := range focal {
		fmt.Printf("%s\t%s\n", lakeID, strings.Join(idStrings(erasable[lakeID].IDs()), ","))
	}
	return nil
}

func runOutlets(c *cli.Context, logger *logrus.Entry) error {
	src, err := getSource(c.String("source-uri"), logger)
	if err != nil {
		return err
	}
	defer src.Close()

	n := watershed.NewNetwork(src, logger.WithField("subcommand", "outlets"))
	outlets, method, err := n.SubregionOutlets()
	if err != nil {
		return err
	}
	inlets, err := n.SubregionInlets()
	if err != nil {
		return err
	}

	fmt.Printf("outlets (%s): %s\n", method, strings.Join(idStrings(outlets), ","))
	fmt.Printf("inlets: %s\n", strings.Join(idStrings(inlets), ","))
	return nil
}

// readIDFile reads one permanent identifier per line.
func readIDFile(path string) ([]network.ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read id file: %w", err)
	}
	var ids []network.ID
	for _, line := range strings.Split(string(data), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, network.ID(id))
		}
	}
	return ids, nil
}

func idStrings(ids []network.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
