package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"
)

var durationType = reflect.TypeFor[time.Duration]()

// options 配置加载选项。
type options struct {
	appName     string
	cmd         *cli.Command
	configPaths []string
	envPrefix   string
	dotenv      string
	noExpansion bool
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
//
// 若命令定义了 --config 且已设置，其值作为唯一的配置文件路径。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径，按顺序查找，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithEnvPrefix 启用环境变量覆盖。
//
// 变量名为前缀 + 大写的配置 key，点号与连字符转为下划线，
// 例如前缀 "CONTRACTION_" 时 server.max-bytes → CONTRACTION_SERVER_MAX_BYTES。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithDotenv 在加载前读取 path 指向的 .env 文件，已存在的环境变量不会被覆盖。
// 文件不存在时忽略。
func WithDotenv(path string) Option {
	return func(o *options) {
		o.dotenv = path
	}
}

// WithoutEnvExpansion 禁用默认值与配置文件中的 ${...} 展开。
func WithoutEnvExpansion() Option {
	return func(o *options) {
		o.noExpansion = true
	}
}

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml
//  2. ~/.appname.yaml
//  3. /etc/appname/config.yaml
//  4. config.yaml
//  5. config/config.yaml
func DefaultPaths(appName string) []string {
	var paths []string
	if appName != "" {
		paths = append(paths, "."+appName+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
		}
		paths = append(paths, "/etc/"+appName+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并：默认值 → 配置文件 → 环境变量 → CLI flags。
func Load(opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.cmd != nil && hasFlag(o.cmd, "config") && o.cmd.IsSet("config") {
		o.configPaths = []string{o.cmd.String("config")}
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	if o.dotenv != "" {
		if err := godotenv.Load(o.dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load dotenv %s: %w", o.dotenv, err)
		}
	}

	defaults := DefaultConfig()
	leaves := collectLeaves(reflect.TypeOf(defaults), "")

	values := structToMap(reflect.ValueOf(defaults))
	if !o.noExpansion {
		if err := expandMap(values); err != nil {
			return nil, fmt.Errorf("expand defaults: %w", err)
		}
	}

	if err := mergeFirstFile(values, o); err != nil {
		return nil, err
	}

	if o.envPrefix != "" {
		for _, leaf := range leaves {
			applyEnv(values, o.envPrefix, leaf)
		}
	}

	if o.cmd != nil {
		for _, leaf := range leaves {
			applyFlag(values, o.cmd, leaf)
		}
	}

	var cfg Config
	if err := decode(values, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad(opts ...Option) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}

	return cfg
}

func mergeFirstFile(values map[string]any, o *options) error {
	for _, path := range o.configPaths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !o.noExpansion {
			expanded, expandErr := ExpandEnv(string(content))
			if expandErr != nil {
				return fmt.Errorf("expand template in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileValues, err := parseFile(path, content)
		if err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(values, fileValues)
		slog.Debug("Loaded config from file", "path", path)

		return nil
	}

	slog.Debug("No config file found, using defaults")

	return nil
}

func parseFile(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	out, ok := normalizeKeys(raw).(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return out, nil
}

// leaf 配置结构体中的叶子字段。
type leaf struct {
	key string // 以 "." 连接的 json tag 路径，如 server.max-bytes
	typ reflect.Type
}

func collectLeaves(typ reflect.Type, prefix string) []leaf {
	var out []leaf
	for i := range typ.NumField() {
		field := typ.Field(i)
		name := tagName(field)
		if name == "" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct && field.Type != durationType {
			out = append(out, collectLeaves(field.Type, key)...)
			continue
		}
		out = append(out, leaf{key: key, typ: field.Type})
	}

	return out
}

func tagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func applyEnv(values map[string]any, prefix string, l leaf) {
	name := prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(l.key))
	val := os.Getenv(name)
	if val == "" {
		return
	}

	switch l.typ.Kind() {
	case reflect.Map:
		// map 类型无法用单个环境变量表达
		return
	case reflect.Slice:
		items := strings.Split(val, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		setPath(values, l.key, items)
	default:
		setPath(values, l.key, val)
	}
	slog.Debug("Loaded env binding", "env", name, "path", l.key)
}

func applyFlag(values map[string]any, cmd *cli.Command, l leaf) {
	name := strings.ReplaceAll(l.key, ".", "-")
	if !hasFlag(cmd, name) || !cmd.IsSet(name) {
		return
	}

	if l.typ == durationType {
		setPath(values, l.key, cmd.Duration(name))
		return
	}

	switch l.typ.Kind() {
	case reflect.String:
		setPath(values, l.key, cmd.String(name))
	case reflect.Bool:
		setPath(values, l.key, cmd.Bool(name))
	case reflect.Int:
		setPath(values, l.key, cmd.Int(name))
	case reflect.Int64:
		setPath(values, l.key, cmd.Int64(name))
	case reflect.Slice:
		setPath(values, l.key, cmd.StringSlice(name))
	case reflect.Map:
		setPath(values, l.key, cmd.StringMap(name))
	default:
	}
}

// hasFlag 判断 cmd 或其祖先是否定义了 name 对应的 flag。
func hasFlag(cmd *cli.Command, name string) bool {
	for _, c := range cmd.Lineage() {
		for _, f := range c.Flags {
			for _, n := range f.Names() {
				if n == name {
					return true
				}
			}
		}
	}

	return false
}

func structToMap(val reflect.Value) map[string]any {
	typ := val.Type()
	out := make(map[string]any, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		name := tagName(field)
		if name == "" || !field.IsExported() {
			continue
		}

		fv := val.Field(i)
		if field.Type.Kind() == reflect.Struct && field.Type != durationType {
			out[name] = structToMap(fv)
			continue
		}
		out[name] = fv.Interface()
	}

	return out
}

// expandMap 对 map 中的字符串叶子执行 [ExpandEnv]。
func expandMap(values map[string]any) error {
	for key, value := range values {
		switch typed := value.(type) {
		case map[string]any:
			if err := expandMap(typed); err != nil {
				return err
			}
		case string:
			expanded, err := ExpandEnv(typed)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			values[key] = expanded
		}
	}

	return nil
}

func normalizeKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeKeys(value)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeKeys(value)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
}

func setPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func decode(values map[string]any, out *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
