package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/config"
	"github.com/xy-planning-network/enumerate/definition"
	"github.com/xy-planning-network/enumerate/logger"
	"github.com/xy-planning-network/enumerate/postgres"
)

// app holds what every command needs:
// the configuration, a logger and the enumerations the definitions file declares.
type app struct {
	cfg  config.Config
	log  logger.Logger
	defs definition.File
	reg  *enumerate.Registry
}

func newApp(envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	log := cfg.Logger()
	a := &app{cfg: cfg, log: log, reg: enumerate.NewRegistry(enumerate.WithLogger(log))}

	a.defs, err = definition.ParseFile(cfg.Definitions)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}

	opts := []enumerate.Option{enumerate.WithLocale(cfg.Locale)}
	if cfg.Sort != enumerate.SortNone {
		opts = append(opts, enumerate.WithSort(cfg.Sort))
	}

	if cfg.Translations != "" {
		c, err := loadCatalog(cfg.Translations)
		if err != nil {
			return nil, err
		}
		opts = append(opts, enumerate.WithTranslator(c))
	}

	if err := a.defs.Register(a.reg, opts...); err != nil {
		return nil, fmt.Errorf("registering definitions: %w", err)
	}

	return a, nil
}

func loadCatalog(path string) (*enumerate.Catalog, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading translations: %s", enumerate.ErrNotExist, err)
	}
	defer fd.Close()

	return enumerate.LoadCatalog(fd)
}

// attribute associates the enumeration named name with a column,
// for the commands deriving SQL from it.
func (a *app) attribute(name, column string, required bool) (enumerate.Association, error) {
	d, err := a.reg.Lookup(name)
	if err != nil {
		return nil, err
	}

	if column == "" {
		column = name
	}

	opts := []enumerate.AttributeOption{enumerate.WithColumn(column)}
	if required {
		opts = append(opts, enumerate.Required())
	}

	return definition.Attribute(enumerate.Camelize(column), d, opts...)
}

// constraintFlags are the flags of the commands constraining a column to an enumeration.
type constraintFlags struct {
	table    string
	column   string
	required bool
	enumType bool
}

// constraint builds the Migration constraining a column to the enumeration named name,
// along with the SQL it executes.
// Bad flags surface here, before any database is involved.
func (a *app) constraint(name string, f constraintFlags) (postgres.Migration, string, error) {
	if f.enumType {
		d, err := a.reg.Lookup(name)
		if err != nil {
			return postgres.Migration{}, "", err
		}

		stmt, err := postgres.CreateEnumTypeSQL(name, d)
		if err != nil {
			return postgres.Migration{}, "", err
		}

		return postgres.CreateEnumType(name, d), stmt, nil
	}

	attr, err := a.attribute(name, f.column, f.required)
	if err != nil {
		return postgres.Migration{}, "", err
	}

	stmt, err := postgres.CheckConstraintSQL(f.table, attr)
	if err != nil {
		return postgres.Migration{}, "", err
	}

	return postgres.CheckConstraint(f.table, attr), stmt, nil
}
