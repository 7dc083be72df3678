// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the contract document.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/internal/optimizer"
	"github.com/iwvelando/payment-clauses/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds the contract document plus logging and output options.
type Configuration struct {
	Logging  LoggingConfig     `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig      `mapstructure:"output" yaml:"output,omitempty"`
	Contrato condicao.Contrato `mapstructure:"contrato" yaml:"contrato"`

	// Fechamento lists the closing directives run after loading, in order.
	Fechamento []optimizer.Directive `mapstructure:"fechamento" yaml:"fechamento,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, pdf, xlsx, yaml
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigType("yml")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Prepare normalises the codes of every condition and validates the
// contract, replacing it with its canonical form.
func (c *Configuration) Prepare() error {
	contrato, err := c.Contrato.Prepare()
	if err != nil {
		return fmt.Errorf("invalid contract document: %w", err)
	}
	c.Contrato = contrato
	return nil
}

// ValidateConfiguration performs general validation of the contract and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	return DocumentWarnings(c.Contrato)
}

// DocumentWarnings returns the non-fatal issues of a contract document.
func DocumentWarnings(contrato condicao.Contrato) []string {
	result := conciliacao.Reconcile(contrato.Condicoes, contrato.ValorReferencia)

	// Convert condition structs to validation format
	conditions := make([]validation.ConditionConfig, 0, len(contrato.Condicoes))
	for _, cond := range contrato.Condicoes {
		conditions = append(conditions, validation.ConditionConfig{
			Ordem:          cond.Ordem,
			Tipo:           string(cond.Tipo),
			Valor:          cond.Valor,
			Percentual:     cond.IsPercentual(),
			DataVencimento: cond.DataVencimento,
			Evento:         string(cond.EventoVencimento),
			ComCorrecao:    cond.ComCorrecao,
			Indice:         string(cond.IndiceCorrecao),
		})
	}

	validator := validation.DocumentValidator{
		ReferenceTotal: result.ReferenceTotal,
		Difference:     result.Difference,
		IsBalanced:     result.IsBalanced,
		Conditions:     conditions,
	}
	return validator.ValidateAll()
}

// WriteDocument writes the configuration back out as YAML, in the same shape
// LoadConfiguration reads.
func WriteDocument(w io.Writer, c Configuration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("unable to encode configuration, %w", err)
	}
	return enc.Close()
}
