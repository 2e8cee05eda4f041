package config

import (
	"strconv"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config is the resolved, immutable configuration one invocation runs
// with. It is produced once by Load and passed by value to every
// component.
type Config struct {
	ChangerName string
	LogFile     string
	DebugLevel  int

	MtxBin        string
	MtBin         string
	UnameBin      string
	LsBin         string
	LsscsiBin     string
	CamcontrolBin string
	TapeinfoBin   string

	LoadWait     int
	LoadSleep    int
	CleanWait    int
	OfflineSleep int

	Offline             bool
	Inventory           bool
	AutoClean           bool
	CheckDrive          bool
	IncludeImportExport bool
	VXAPacketLoader     bool
	StripJobName        bool
	LogConfigVars       bool

	CleaningPrefix string
}

const DefaultSection = "DEFAULT"

var defaults = map[string]string{
	"chgr_name":             "",
	"mtx_log_file":          "/opt/bacula/log/mtx.log",
	"debug_level":           "20",
	"mtx_bin":               "/usr/sbin/mtx",
	"mt_bin":                "/usr/bin/mt",
	"uname_bin":             "/usr/bin/uname",
	"ls_bin":                "/usr/bin/ls",
	"lsscsi_bin":            "/usr/bin/lsscsi",
	"camcontrol_bin":        "/sbin/camcontrol",
	"tapeinfo_bin":          "/usr/sbin/tapeinfo",
	"load_wait":             "300",
	"load_sleep":            "0",
	"clean_wait":            "90",
	"offline":               "false",
	"offline_sleep":         "0",
	"inventory":             "false",
	"auto_clean":            "false",
	"chk_drive":             "false",
	"cln_str":               "CLN",
	"include_import_export": "false",
	"vxa_packetloader":      "false",
	"strip_jobname":         "true",
	"log_cfg_vars":          "false",
}

// Load reads the INI config file at path and resolves the given section
// against it. Booleans are validated strictly at load time so that no
// operation ever runs with a half-coerced toggle.
func Load(fs afero.Fs, path string, section string) (Config, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return Config{}, errors.Wrap(ErrConfigFileUnreadable, path)
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "could not read config file")
	}

	sectioned := section != "" && !strings.EqualFold(section, DefaultSection)
	if sectioned && !v.IsSet(section) {
		return Config{}, errors.Wrap(ErrConfigSectionMissing, section)
	}

	get := func(key string) string {
		if sectioned && v.IsSet(section+"."+key) {
			return strings.TrimSpace(v.GetString(section + "." + key))
		}

		if v.IsSet(key) {
			return strings.TrimSpace(v.GetString(key))
		}

		return defaults[key]
	}

	getBool := func(key string) (bool, error) {
		switch strings.ToLower(get(key)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, errors.Wrapf(ErrConfigBooleanInvalid, "%v (%v)", key, get(key))
		}
	}

	getInt := func(key string) (int, error) {
		i, err := strconv.Atoi(get(key))
		if err != nil {
			return 0, errors.Wrapf(ErrConfigIntegerInvalid, "%v (%v)", key, get(key))
		}

		return i, nil
	}

	cfg := Config{
		ChangerName: get("chgr_name"),
		LogFile:     get("mtx_log_file"),

		MtxBin:        get("mtx_bin"),
		MtBin:         get("mt_bin"),
		UnameBin:      get("uname_bin"),
		LsBin:         get("ls_bin"),
		LsscsiBin:     get("lsscsi_bin"),
		CamcontrolBin: get("camcontrol_bin"),
		TapeinfoBin:   get("tapeinfo_bin"),

		CleaningPrefix: get("cln_str"),
	}

	for _, field := range []struct {
		key string
		dst *int
	}{
		{"debug_level", &cfg.DebugLevel},
		{"load_wait", &cfg.LoadWait},
		{"load_sleep", &cfg.LoadSleep},
		{"clean_wait", &cfg.CleanWait},
		{"offline_sleep", &cfg.OfflineSleep},
	} {
		i, err := getInt(field.key)
		if err != nil {
			return Config{}, err
		}

		*field.dst = i
	}

	for _, field := range []struct {
		key string
		dst *bool
	}{
		{"offline", &cfg.Offline},
		{"inventory", &cfg.Inventory},
		{"auto_clean", &cfg.AutoClean},
		{"chk_drive", &cfg.CheckDrive},
		{"include_import_export", &cfg.IncludeImportExport},
		{"vxa_packetloader", &cfg.VXAPacketLoader},
		{"strip_jobname", &cfg.StripJobName},
		{"log_cfg_vars", &cfg.LogConfigVars},
	} {
		b, err := getBool(field.key)
		if err != nil {
			return Config{}, err
		}

		*field.dst = b
	}

	return cfg, nil
}

// Pairs returns the resolved configuration as ordered key/value pairs for
// the startup config dump.
func (c Config) Pairs() [][2]string {
	return [][2]string{
		{"chgr_name", c.ChangerName},
		{"mtx_log_file", c.LogFile},
		{"debug_level", strconv.Itoa(c.DebugLevel)},
		{"mtx_bin", c.MtxBin},
		{"mt_bin", c.MtBin},
		{"uname_bin", c.UnameBin},
		{"ls_bin", c.LsBin},
		{"lsscsi_bin", c.LsscsiBin},
		{"camcontrol_bin", c.CamcontrolBin},
		{"tapeinfo_bin", c.TapeinfoBin},
		{"load_wait", strconv.Itoa(c.LoadWait)},
		{"load_sleep", strconv.Itoa(c.LoadSleep)},
		{"clean_wait", strconv.Itoa(c.CleanWait)},
		{"offline", strconv.FormatBool(c.Offline)},
		{"offline_sleep", strconv.Itoa(c.OfflineSleep)},
		{"inventory", strconv.FormatBool(c.Inventory)},
		{"auto_clean", strconv.FormatBool(c.AutoClean)},
		{"chk_drive", strconv.FormatBool(c.CheckDrive)},
		{"cln_str", c.CleaningPrefix},
		{"include_import_export", strconv.FormatBool(c.IncludeImportExport)},
		{"vxa_packetloader", strconv.FormatBool(c.VXAPacketLoader)},
		{"strip_jobname", strconv.FormatBool(c.StripJobName)},
		{"log_cfg_vars", strconv.FormatBool(c.LogConfigVars)},
	}
}
