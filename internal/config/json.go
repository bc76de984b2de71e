package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration file.
type StructuredJSONConfig struct {
	App struct {
		LocalKeyPassphrase string `json:"local_key_passphrase"`
		AccountKeyFile     string `json:"account_key_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		PageSize       int      `json:"page_size"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval         Duration `json:"sync_interval"`
		ShareConcurrency     int      `json:"share_concurrency"`
		MaxEventPages        int      `json:"max_event_pages"`
		ReachabilityInterval Duration `json:"reachability_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LocalKeyPassphrase: jsonCfg.App.LocalKeyPassphrase,
			AccountKeyFile:     jsonCfg.App.AccountKeyFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			PageSize:       jsonCfg.Adapter.PageSize,
			Token:          jsonCfg.Adapter.Token,
		},
		Workers: Workers{
			SyncInterval:         time.Duration(jsonCfg.Workers.SyncInterval),
			ShareConcurrency:     jsonCfg.Workers.ShareConcurrency,
			MaxEventPages:        jsonCfg.Workers.MaxEventPages,
			ReachabilityInterval: time.Duration(jsonCfg.Workers.ReachabilityInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
