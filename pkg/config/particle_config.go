package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gonewx/particles/internal/particle"
	"github.com/gonewx/particles/pkg/components"
	"github.com/gonewx/particles/pkg/embedded"
	"github.com/gonewx/particles/pkg/types"
	"github.com/gonewx/particles/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ParticleConfigFile 粒子配置文件的 YAML 结构
//
//	emitters:
//	  sparkles:
//	    emitter:  {amount: 20}
//	    lifespan: {min: 30, max: 60}
//	    velocity: {min_vx: -2, max_vx: 2, min_vy: -2, max_vy: 2}
//	    gravity:  {anchor_x: 0, anchor_y: 0, accel_x: 0.05, accel_y: 0.05}
//	    position: {min_x: -8, max_x: 8, min_y: -8, max_y: 8}
//	    draw:     {min_w: 2, max_w: 4, min_h: 2, max_h: 4, texture: "", fade: Linear}
type ParticleConfigFile struct {
	Emitters map[string]EmitterRecord `yaml:"emitters"`
}

// EmitterRecord 单个类型的原始配置记录
// 数值叶子全部使用指针，nil 表示缺失（不会被静默替换为 0）
type EmitterRecord struct {
	Emitter  *EmitterSection  `yaml:"emitter"`
	Lifespan *LifespanSection `yaml:"lifespan"`
	Velocity *VelocitySection `yaml:"velocity"`
	Gravity  *GravitySection  `yaml:"gravity"`
	Position *PositionSection `yaml:"position"`
	Draw     *DrawSection     `yaml:"draw"`
}

// EmitterSection 发射器参数
type EmitterSection struct {
	Amount *float64 `yaml:"amount"`
}

// LifespanSection 寿命范围（tick）
type LifespanSection struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

// VelocitySection 初速度范围
type VelocitySection struct {
	MinVX *float64 `yaml:"min_vx"`
	MaxVX *float64 `yaml:"max_vx"`
	MinVY *float64 `yaml:"min_vy"`
	MaxVY *float64 `yaml:"max_vy"`
}

// GravitySection 锚点偏移与加速度
type GravitySection struct {
	AnchorX *float64 `yaml:"anchor_x"`
	AnchorY *float64 `yaml:"anchor_y"`
	AccelX  *float64 `yaml:"accel_x"`
	AccelY  *float64 `yaml:"accel_y"`
}

// PositionSection 生成偏移范围（相对发射器中心）
type PositionSection struct {
	MinX *float64 `yaml:"min_x"`
	MaxX *float64 `yaml:"max_x"`
	MinY *float64 `yaml:"min_y"`
	MaxY *float64 `yaml:"max_y"`
}

// DrawSection 绘制尺寸与可选纹理
type DrawSection struct {
	MinW    *float64      `yaml:"min_w"`
	MaxW    *float64      `yaml:"max_w"`
	MinH    *float64      `yaml:"min_h"`
	MaxH    *float64      `yaml:"max_h"`
	Texture string        `yaml:"texture,omitempty"`
	Fade    string        `yaml:"fade,omitempty"`
	Color   *ColorSection `yaml:"color,omitempty"`
}

// ColorSection 可选填充颜色（0-255）
type ColorSection struct {
	R *float64 `yaml:"r"`
	G *float64 `yaml:"g"`
	B *float64 `yaml:"b"`
}

type leaf struct {
	path  string
	value *float64
}

// leaves 按固定顺序列出所有必需的数值叶子
func (r *EmitterRecord) leaves() []leaf {
	e := r.Emitter
	if e == nil {
		e = &EmitterSection{}
	}
	l := r.Lifespan
	if l == nil {
		l = &LifespanSection{}
	}
	v := r.Velocity
	if v == nil {
		v = &VelocitySection{}
	}
	g := r.Gravity
	if g == nil {
		g = &GravitySection{}
	}
	p := r.Position
	if p == nil {
		p = &PositionSection{}
	}
	d := r.Draw
	if d == nil {
		d = &DrawSection{}
	}

	leaves := []leaf{
		{"emitter.amount", e.Amount},
		{"lifespan.min", l.Min},
		{"lifespan.max", l.Max},
		{"velocity.min_vx", v.MinVX},
		{"velocity.max_vx", v.MaxVX},
		{"velocity.min_vy", v.MinVY},
		{"velocity.max_vy", v.MaxVY},
		{"gravity.anchor_x", g.AnchorX},
		{"gravity.anchor_y", g.AnchorY},
		{"gravity.accel_x", g.AccelX},
		{"gravity.accel_y", g.AccelY},
		{"position.min_x", p.MinX},
		{"position.max_x", p.MaxX},
		{"position.min_y", p.MinY},
		{"position.max_y", p.MaxY},
		{"draw.min_w", d.MinW},
		{"draw.max_w", d.MaxW},
		{"draw.min_h", d.MinH},
		{"draw.max_h", d.MaxH},
	}
	if d.Color != nil {
		leaves = append(leaves,
			leaf{"draw.color.r", d.Color.R},
			leaf{"draw.color.g", d.Color.G},
			leaf{"draw.color.b", d.Color.B},
		)
	}
	return leaves
}

// ParticleConfig 已加载并验证的粒子配置
// 每个类型在加载时验证一次：通过的类型可解析，失败的类型记录其错误
type ParticleConfig struct {
	// Source 配置来源路径（用于日志）
	Source string

	properties map[types.EmitterType]components.ParticleProperties
	rejected   map[types.EmitterType]error
}

// Resolve 返回某类型的粒子属性
// 类型配置有缺陷时返回加载时记录的错误（ErrConfigMissingAttribute / ErrInvalidRange）
func (c *ParticleConfig) Resolve(t types.EmitterType) (components.ParticleProperties, error) {
	if props, ok := c.properties[t]; ok {
		return props, nil
	}
	if err, ok := c.rejected[t]; ok {
		return components.ParticleProperties{}, err
	}
	return components.ParticleProperties{}, fmt.Errorf("%w: no config record for %s", ErrInvalidEmitterType, t)
}

// Types 返回所有可用（验证通过）的类型，按类型顺序排列
func (c *ParticleConfig) Types() []types.EmitterType {
	result := make([]types.EmitterType, 0, len(c.properties))
	for t := range c.properties {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Rejected 返回被拒绝的类型及其错误
func (c *ParticleConfig) Rejected() map[types.EmitterType]error {
	result := make(map[types.EmitterType]error, len(c.rejected))
	for t, err := range c.rejected {
		result[t] = err
	}
	return result
}

// LoadParticleConfig 从磁盘加载粒子配置（.yaml/.yml 或 .xml）
// 文件不存在时返回包装了 ErrConfigMissingFile 的错误
func LoadParticleConfig(path string) (*ParticleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissingFile, path)
		}
		return nil, fmt.Errorf("failed to read particle config file %s: %w", path, err)
	}
	return ParseParticleConfig(path, data)
}

// LoadEmbeddedParticleConfig 从嵌入的 data/ 目录加载粒子配置
func LoadEmbeddedParticleConfig(path string) (*ParticleConfig, error) {
	if !embedded.Exists(path) {
		return nil, fmt.Errorf("%w: %s (embedded)", ErrConfigMissingFile, path)
	}
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded particle config %s: %w", path, err)
	}
	return ParseParticleConfig(path, data)
}

// ParseParticleConfig 解析配置内容，格式由文件扩展名决定
func ParseParticleConfig(name string, data []byte) (*ParticleConfig, error) {
	var records map[string]EmitterRecord
	var order []string

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var file ParticleConfigFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse particle config YAML %s: %w", name, err)
		}
		records = file.Emitters
		for tag := range records {
			order = append(order, tag)
		}
		sort.Strings(order)
	case ".xml":
		doc, err := particle.ParseParticleXML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse particle config %s: %w", name, err)
		}
		records = make(map[string]EmitterRecord, len(doc.Types))
		for _, t := range doc.Types {
			if _, dup := records[t.Name]; dup {
				log.Printf("[Config] Warning: duplicate record %q in %s, keeping the first", t.Name, name)
				continue
			}
			rec, err := recordFromXML(t)
			if err != nil {
				return nil, fmt.Errorf("failed to parse particle config %s: type %q: %w", name, t.Name, err)
			}
			records[t.Name] = rec
			order = append(order, t.Name)
		}
	default:
		return nil, fmt.Errorf("unsupported particle config format %q", name)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("particle config %s contains no emitter records", name)
	}

	cfg := &ParticleConfig{
		Source:     name,
		properties: make(map[types.EmitterType]components.ParticleProperties),
		rejected:   make(map[types.EmitterType]error),
	}

	for _, tag := range order {
		t, err := types.ParseEmitterType(tag)
		if err != nil {
			log.Printf("[Config] Warning: skipping record in %s: %v", name, err)
			continue
		}
		rec := records[tag]
		props, err := BuildProperties(t, &rec)
		if err != nil {
			log.Printf("[Config] Rejecting emitter type %s: %v", t, err)
			cfg.rejected[t] = err
			continue
		}
		cfg.properties[t] = props
	}

	log.Printf("[Config] Loaded %s: %d emitter types ready, %d rejected", name, len(cfg.properties), len(cfg.rejected))
	return cfg, nil
}

// BuildProperties 将原始记录转换为经过验证的粒子属性
func BuildProperties(t types.EmitterType, rec *EmitterRecord) (components.ParticleProperties, error) {
	tag := t.Tag()

	values := make(map[string]float64)
	var missing []string
	for _, lf := range rec.leaves() {
		if lf.value == nil {
			missing = append(missing, lf.path)
			continue
		}
		if math.IsNaN(*lf.value) || math.IsInf(*lf.value, 0) {
			return components.ParticleProperties{}, &AttributeError{
				Type: tag, Attributes: []string{lf.path}, Detail: "not a finite number", Err: ErrInvalidRange,
			}
		}
		values[lf.path] = *lf.value
	}
	if len(missing) > 0 {
		return components.ParticleProperties{}, &AttributeError{Type: tag, Attributes: missing, Err: ErrConfigMissingAttribute}
	}

	amount := values["emitter.amount"]
	if amount != math.Trunc(amount) {
		return components.ParticleProperties{}, &AttributeError{
			Type: tag, Attributes: []string{"emitter.amount"}, Detail: "must be a whole number", Err: ErrInvalidRange,
		}
	}

	props := components.ParticleProperties{
		Amount:        int(amount),
		Lifespan:      components.Range{Min: values["lifespan.min"], Max: values["lifespan.max"]},
		VelocityX:     components.Range{Min: values["velocity.min_vx"], Max: values["velocity.max_vx"]},
		VelocityY:     components.Range{Min: values["velocity.min_vy"], Max: values["velocity.max_vy"]},
		GravityAnchor: components.Vec2{X: values["gravity.anchor_x"], Y: values["gravity.anchor_y"]},
		GravityAccel:  components.Vec2{X: values["gravity.accel_x"], Y: values["gravity.accel_y"]},
		OffsetX:       components.Range{Min: values["position.min_x"], Max: values["position.max_x"]},
		OffsetY:       components.Range{Min: values["position.min_y"], Max: values["position.max_y"]},
		DrawW:         components.Range{Min: values["draw.min_w"], Max: values["draw.max_w"]},
		DrawH:         components.Range{Min: values["draw.min_h"], Max: values["draw.max_h"]},
		Color:         DefaultColor(t),
		Fade:          utils.DefaultFade,
	}

	if rec.Draw != nil {
		props.Texture = components.TextureHandle(strings.TrimSpace(rec.Draw.Texture))
		if rec.Draw.Fade != "" {
			props.Fade = rec.Draw.Fade
		}
		if rec.Draw.Color != nil {
			c, err := toRGBA(values["draw.color.r"], values["draw.color.g"], values["draw.color.b"])
			if err != nil {
				return components.ParticleProperties{}, &AttributeError{
					Type: tag, Attributes: []string{"draw.color"}, Detail: err.Error(), Err: ErrInvalidRange,
				}
			}
			props.Color = c
		}
	}

	if _, ok := utils.LookupFade(props.Fade); !ok {
		return components.ParticleProperties{}, &AttributeError{
			Type: tag, Attributes: []string{"draw.fade"},
			Detail: fmt.Sprintf("unknown fade %q, want one of %s", props.Fade, strings.Join(utils.FadeNames(), ", ")),
			Err:    ErrInvalidRange,
		}
	}

	if err := props.Validate(); err != nil {
		return components.ParticleProperties{}, &AttributeError{Type: tag, Detail: err.Error(), Err: ErrInvalidRange}
	}
	return props, nil
}

func toRGBA(r, g, b float64) (color.RGBA, error) {
	for _, v := range []float64{r, g, b} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("channel %v outside 0-255", v)
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
}

// recordFromXML 将 XML 记录转换为与 YAML 相同的原始记录
func recordFromXML(t particle.TypeConfig) (EmitterRecord, error) {
	var rec EmitterRecord
	var err error

	single := func(s *particle.Section, name string) *float64 {
		if err != nil {
			return nil
		}
		v, ok, e := s.Float(name)
		if e != nil {
			err = e
			return nil
		}
		if !ok {
			return nil
		}
		return &v
	}
	pair := func(s *particle.Section, minName, maxName, rangeName string) (*float64, *float64) {
		if err != nil {
			return nil, nil
		}
		lo, hi, e := s.Pair(minName, maxName, rangeName)
		if e != nil {
			err = e
		}
		return lo, hi
	}

	rec.Emitter = &EmitterSection{Amount: single(t.Emitter, "amount")}

	rec.Lifespan = &LifespanSection{}
	rec.Lifespan.Min, rec.Lifespan.Max = pair(t.Lifespan, "min", "max", "range")

	rec.Velocity = &VelocitySection{}
	rec.Velocity.MinVX, rec.Velocity.MaxVX = pair(t.Velocity, "min_vx", "max_vx", "range_x")
	rec.Velocity.MinVY, rec.Velocity.MaxVY = pair(t.Velocity, "min_vy", "max_vy", "range_y")

	rec.Gravity = &GravitySection{
		AnchorX: single(t.Gravity, "anchor_x"),
		AnchorY: single(t.Gravity, "anchor_y"),
		AccelX:  single(t.Gravity, "accel_x"),
		AccelY:  single(t.Gravity, "accel_y"),
	}

	rec.Position = &PositionSection{}
	rec.Position.MinX, rec.Position.MaxX = pair(t.Position, "min_x", "max_x", "range_x")
	rec.Position.MinY, rec.Position.MaxY = pair(t.Position, "min_y", "max_y", "range_y")

	rec.Draw = &DrawSection{}
	rec.Draw.MinW, rec.Draw.MaxW = pair(t.Draw, "min_w", "max_w", "range_w")
	rec.Draw.MinH, rec.Draw.MaxH = pair(t.Draw, "min_h", "max_h", "range_h")
	rec.Draw.Texture, _ = t.Draw.Attr("texture")
	rec.Draw.Fade, _ = t.Draw.Attr("fade")
	if t.Color != nil {
		rec.Draw.Color = &ColorSection{
			R: single(t.Color, "r"),
			G: single(t.Color, "g"),
			B: single(t.Color, "b"),
		}
	}

	return rec, err
}
