// Configuration is loaded from a yaml file placed on the server. The file is
// decoded strictly (unknown fields are an error, they are usually typos) and
// validated before the service starts up. There is no process global
// configuration state, the parsed Application value is handed to whoever
// needs it.
package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type DatabaseType string

const (
	Mysql    DatabaseType = "mysql"
	Inmemory DatabaseType = "inmemory"
)

type CancelledOrderPolicy string

const (
	// CancelledOrderPolicyNone leaves the host order untouched when the provider
	// reports the bill as still due. This matches the historical behavior.
	CancelledOrderPolicyNone CancelledOrderPolicy = "none"
	// CancelledOrderPolicyRecord additionally records a cancelled row in the
	// payment attempt ledger.
	CancelledOrderPolicyRecord CancelledOrderPolicy = "record-cancelled"
)

type (
	Application struct {
		Service  ServiceConfig  `yaml:"service"`
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Security SecurityConfig `yaml:"security"`
		Payment  PaymentConfig  `yaml:"payment"`
		Logging  LoggingConfig  `yaml:"logging"`
	}

	ServiceConfig struct {
		Name string `yaml:"name"`
		// base url of the fleet management host application api, no trailing slash
		FleetManagerService string `yaml:"fleet_manager_service"`
		// public base url of the host site, used to build callback and redirect urls
		PublicSiteURL string `yaml:"public_site_url"`
	}

	ServerConfig struct {
		BaseAddress  string `yaml:"address"`
		Port         int    `yaml:"port"`
		ReadTimeout  int    `yaml:"read_timeout_seconds"`
		WriteTimeout int    `yaml:"write_timeout_seconds"`
		IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	}

	DatabaseConfig struct {
		Use        DatabaseType `yaml:"use"`
		Username   string       `yaml:"username"`
		Password   string       `yaml:"password"`
		Database   string       `yaml:"database"`
		Parameters []string     `yaml:"parameters"`
	}

	SecurityConfig struct {
		Fixed FixedTokenConfig    `yaml:"fixed_token"`
		Oidc  OpenIdConnectConfig `yaml:"oidc"`
		Cors  CorsConfig          `yaml:"cors"`
	}

	FixedTokenConfig struct {
		// shared secret for host-to-adapter and adapter-to-host calls
		Api string `yaml:"api"`
	}

	OpenIdConnectConfig struct {
		TokenCookieName    string   `yaml:"token_cookie_name"`
		TokenPublicKeysPEM []string `yaml:"token_public_keys_PEM"`
		AdminRole          string   `yaml:"admin_role"`
	}

	CorsConfig struct {
		DisableCors bool   `yaml:"disable"`
		AllowOrigin string `yaml:"allow_origin"`
	}

	// PaymentConfig carries the Billplz payment method settings. The historical
	// implementation packed signature key and collection id into a single
	// credential field separated by a pipe - these are named fields now, and
	// invalid values are rejected at load time instead of at first use.
	PaymentConfig struct {
		MethodID   int    `yaml:"method_id"`
		MethodCode string `yaml:"method_code"`
		// routing tag of the host extension that receives the provider callback
		ExtCode string `yaml:"ext_code"`
		// query parameter prefix of the host plugin api dispatcher
		PluginPrefix string `yaml:"plugin_prefix"`

		ApiKey       string `yaml:"api_key"`
		SignatureKey string `yaml:"signature_key"`
		CollectionID string `yaml:"collection_id"`
		Sandbox      bool   `yaml:"sandbox"`
		DisableSSL   bool   `yaml:"disable_ssl"`

		// bill creation is skipped entirely while this is unset
		BusinessEmail string `yaml:"business_email"`

		CurrencyCode        string  `yaml:"currency_code"`
		CurrencySymbol      string  `yaml:"currency_symbol"`
		PayInCurrencyCode   string  `yaml:"pay_in_currency_code"`
		PayInCurrencySymbol string  `yaml:"pay_in_currency_symbol"`
		PayInCurrencyRate   float64 `yaml:"pay_in_currency_rate"`

		ConfirmedPageID   int  `yaml:"confirmed_page_id"`
		CancelledPageID   int  `yaml:"cancelled_page_id"`
		SendNotifications bool `yaml:"send_notifications"`

		CancelledOrderPolicy CancelledOrderPolicy `yaml:"cancelled_order_policy"`

		// re-apply the pay-in rate when interpreting paid amounts from the
		// provider (see currency.Policy for why this exists)
		ApplyRateOnPayout bool `yaml:"apply_rate_on_payout"`
	}

	LoggingConfig struct {
		Severity string `yaml:"severity"`
		// log human readable lines instead of json, for local development
		Plaintext bool `yaml:"plaintext"`
	}
)

func UnmarshalFromYamlConfiguration(file io.Reader) (*Application, error) {
	d := yaml.NewDecoder(file)
	d.KnownFields(true)

	conf := &Application{}
	if err := d.Decode(conf); err != nil {
		return nil, err
	}

	applyDefaults(conf)

	return conf, nil
}

func applyDefaults(conf *Application) {
	if conf.Payment.MethodCode == "" {
		conf.Payment.MethodCode = "BILLPLZ"
	}
	if conf.Payment.CurrencyCode == "" {
		conf.Payment.CurrencyCode = "MYR"
	}
	if conf.Payment.CurrencySymbol == "" {
		conf.Payment.CurrencySymbol = "RM"
	}
	if conf.Payment.CancelledOrderPolicy == "" {
		conf.Payment.CancelledOrderPolicy = CancelledOrderPolicyNone
	}
}

// LoadConfiguration reads, parses and validates the configuration file.
func LoadConfiguration(filename string, logFunc func(format string, v ...interface{})) (*Application, error) {
	if filename == "" {
		return nil, errors.New("no configuration file name provided")
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf, err := UnmarshalFromYamlConfiguration(f)
	if err != nil {
		return nil, err
	}

	if err := Validate(conf, logFunc); err != nil {
		return nil, err
	}

	return conf, nil
}
