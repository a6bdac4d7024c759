package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Addr      string    `koanf:"addr"`
	Timezone  string    `koanf:"timezone"`
	Storage   Storage   `koanf:"storage"`
	Database  Database  `koanf:"db"`
	Countdown Countdown `koanf:"countdown"`
	CalDAV    CalDAV    `koanf:"caldav"`
}

// Storage selects the backend holding the "local storage" key/value pairs.
// Driver is one of: file, memory, sqlite, postgres.
type Storage struct {
	Driver string `koanf:"driver"`
	// Path is the JSON file for the file driver and the database file for sqlite.
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Countdown struct {
	Interval time.Duration `koanf:"interval"`
}

type CalDAV struct {
	Endpoint string `koanf:"endpoint"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	// Calendar is the collection path the events are written to, e.g. /calendars/me/hackathons/
	Calendar string `koanf:"calendar"`
}

func Defaults() Application {
	return Application{
		Addr:     ":8181",
		Timezone: "Local",
		Storage: Storage{
			Driver: "file",
			Path:   "./data/local_storage.json",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "hackathons",
			Pass:   "",
			Name:   "hackathons",
			Schema: "hackathons",
		},
		Countdown: Countdown{
			Interval: time.Second,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Debugf("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "HACKATHONS_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "HACKATHONS_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if app.Countdown.Interval <= 0 {
		app.Countdown.Interval = time.Second
	}

	return app, nil
}

// Location resolves the configured time zone used to read form-style times without an offset.
func (a Application) Location() *time.Location {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, falling back to local time: %v", a.Timezone, err)
		return time.Local
	}
	return loc
}
