// Package main 校验粒子配置文件并按类型输出结果
//
// Usage:
//
//	go run ./cmd/check_config [flags] <config> [config...]
//
// Flags:
//
//	-strict   未配置的类型也视为失败
//
// 传入多个文件时还会逐类型比较各文件解析出的属性（例如 YAML 与 XML 版本是否一致）。
// 任一文件加载失败、有类型被拒绝或属性不一致时以状态码 1 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gonewx/particles/pkg/config"
	"github.com/gonewx/particles/pkg/types"
)

var strictFlag = flag.Bool("strict", false, "Treat unconfigured emitter types as errors")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <config> [config...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{config.DefaultParticleConfigPath}
	}

	if !run(os.Stdout, paths, *strictFlag) {
		os.Exit(1)
	}
}

// run 校验所有文件并输出报告，全部通过返回 true
func run(w io.Writer, paths []string, strict bool) bool {
	ok := true
	loaded := make([]*config.ParticleConfig, 0, len(paths))

	for _, path := range paths {
		cfg, err := config.LoadParticleConfig(path)
		if err != nil {
			fmt.Fprintf(w, "❌ %s: %v\n\n", path, err)
			ok = false
			continue
		}
		if !report(w, cfg, strict) {
			ok = false
		}
		loaded = append(loaded, cfg)
	}

	if len(loaded) > 1 {
		if !compare(w, loaded) {
			ok = false
		}
	}
	return ok
}

// report 输出单个配置中每种类型的状态
func report(w io.Writer, cfg *config.ParticleConfig, strict bool) bool {
	ok := true
	rejected := cfg.Rejected()

	fmt.Fprintf(w, "=== %s ===\n", cfg.Source)
	for _, t := range types.AllEmitterTypes {
		if err, bad := rejected[t]; bad {
			fmt.Fprintf(w, "  ❌ %-10s %v\n", t, err)
			ok = false
			continue
		}

		props, err := cfg.Resolve(t)
		if err != nil {
			mark := "⚠️ "
			if strict {
				mark = "❌"
				ok = false
			}
			fmt.Fprintf(w, "  %s %-10s not configured\n", mark, t)
			continue
		}

		texture := "-"
		if props.Texture != "" {
			texture = string(props.Texture)
		}
		fmt.Fprintf(w, "  ✅ %-10s amount=%d lifespan=[%g, %g] fade=%s texture=%s\n",
			t, props.Amount, props.Lifespan.Min, props.Lifespan.Max, props.Fade, texture)
	}
	fmt.Fprintln(w)
	return ok
}

// compare 逐类型比较第一个配置与其余配置
func compare(w io.Writer, cfgs []*config.ParticleConfig) bool {
	ok := true
	base := cfgs[0]

	fmt.Fprintln(w, "=== 一致性 ===")
	for _, other := range cfgs[1:] {
		for _, t := range types.AllEmitterTypes {
			want, errA := base.Resolve(t)
			got, errB := other.Resolve(t)
			switch {
			case errA != nil && errB != nil:
				continue
			case errA != nil || errB != nil:
				fmt.Fprintf(w, "  ❌ %-10s only available in one of %s, %s\n", t, base.Source, other.Source)
				ok = false
			case want != got:
				fmt.Fprintf(w, "  ❌ %-10s differs between %s and %s\n", t, base.Source, other.Source)
				ok = false
			}
		}
	}
	if ok {
		fmt.Fprintln(w, "  ✅ all files agree")
	}
	return ok
}
