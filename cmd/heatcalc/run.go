package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomaszchojnowski/heatcalc/internal/export"
	"github.com/tomaszchojnowski/heatcalc/internal/history"
	"github.com/tomaszchojnowski/heatcalc/internal/server"
	"github.com/tomaszchojnowski/heatcalc/pkg/assess"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
	"github.com/tomaszchojnowski/heatcalc/pkg/cost"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

type assessOptions struct {
	postcode     string
	propertyType string
	request      assess.Request

	json         bool
	xlsx         string
	chart        string
	prices       string
	templates    string
	internalTemp float64
	bedroomTemp  float64
}

// newAssessor builds an assessor from the configuration. Non-empty flag
// values win over the configured paths.
func (a *app) newAssessor(prices, templates string) (*assess.Assessor, error) {
	if templates == "" {
		templates = a.cfg.TemplatesDir
	}
	if prices == "" {
		prices = a.cfg.PriceBookPath
	}

	reg, err := loadRegistry(templates)
	if err != nil {
		return nil, err
	}

	est := cost.NewEstimator()
	est.LabourRegion = a.cfg.LabourRegion
	if prices != "" {
		book, err := cost.LoadPriceBook(prices)
		if err != nil {
			return nil, fmt.Errorf("loading price book: %w", err)
		}
		est.Prices = book
		a.logger.Debug("price book loaded", "path", prices)
	}
	return assess.New(reg, assess.WithLogger(a.logger), assess.WithEstimator(est)), nil
}

func loadRegistry(dir string) (*template.Registry, error) {
	reg, err := template.Builtin()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		if err := reg.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (a *app) runAssess(ctx context.Context, w io.Writer, opts assessOptions) error {
	assessor, err := a.newAssessor(opts.prices, opts.templates)
	if err != nil {
		return err
	}

	req := opts.request
	req.Postcode = opts.postcode
	req.PropertyType = opts.propertyType
	res, err := assessor.Assess(ctx, req)
	if err != nil {
		return err
	}

	if opts.xlsx != "" {
		if err := writeFile(opts.xlsx, func(f io.Writer) error { return export.WriteXLSX(f, res) }); err != nil {
			return fmt.Errorf("writing spreadsheet: %w", err)
		}
		a.logger.Info("spreadsheet written", "path", opts.xlsx)
	}
	if opts.chart != "" {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.chart)), ".")
		if err := writeFile(opts.chart, func(f io.Writer) error { return export.WriteChart(f, res.Building, format) }); err != nil {
			return fmt.Errorf("writing chart: %w", err)
		}
		a.logger.Info("chart written", "path", opts.chart)
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printAssessment(w, message.NewPrinter(language.BritishEnglish), res)
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func (a *app) runTemplates(w io.Writer, dir string) error {
	if dir == "" {
		dir = a.cfg.TemplatesDir
	}
	reg, err := loadRegistry(dir)
	if err != nil {
		return err
	}
	printTemplates(w, reg.All())
	return nil
}

func runRegions(w io.Writer, coldest int) error {
	regions := climate.Regions()
	if coldest > 0 {
		regions = climate.ColdestRegions(coldest)
	}
	printRegions(w, regions)
	return nil
}

var errInvalidTemplate = errors.New("template has validation errors")

func runValidate(w io.Writer, path string) error {
	t, err := template.Load(path)
	if err != nil {
		return err
	}
	report := validation.ValidateTemplate(t)
	printValidationReport(w, report)
	if !report.Valid {
		return errInvalidTemplate
	}
	return nil
}

func (a *app) runServe(ctx context.Context, prices, templates string) error {
	assessor, err := a.newAssessor(prices, templates)
	if err != nil {
		return err
	}
	store, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}

	srv := server.New(assessor, store, a.logger, a.cfg.Port)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// sessionStore returns the Redis store when an address is configured and
// the in-memory store otherwise.
func (a *app) sessionStore(ctx context.Context) (history.Store, error) {
	if a.cfg.RedisAddr == "" {
		a.logger.Info("using in-memory session store")
		return history.NewMemoryStore(), nil
	}
	client, err := history.NewRedisClient(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	a.logger.Info("using redis session store", slog.String("addr", a.cfg.RedisAddr), slog.Duration("ttl", a.cfg.SessionTTL))
	return history.NewRedisStore(history.NewRedisKVStore(client), a.cfg.SessionTTL), nil
}
