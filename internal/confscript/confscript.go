// Package confscript loads gate configuration from a Lua script. The
// script runs with only the base libraries available and is expected
// to assign a global table called config:
//
//	config = {
//		bind = "localhost:7100",
//		upstream = "http://localhost:3000",
//		hashed_password = "$argon2id$...",
//		cookie_name = "stagedoor_session",
//		journal = "/var/lib/stagedoor",
//		tls = { self_signed = true },
//	}
//
// Being a script, operators can compute values (read files,
// concatenate paths) instead of waiting for a templating language to
// grow here.
package confscript

import (
	"fmt"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

type (
	Config struct {
		Bind           string
		Upstream       string
		Password       string
		HashedPassword string
		CookieName     string
		Journal        string
		TLS            TLSConfig
	}

	TLSConfig struct {
		Cert       string
		Key        string
		SelfSigned bool
	}
)

// Load runs file and maps its config table onto a Config value.
func Load(file string) (Config, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	injectBaseLibs(L)
	if err := L.DoFile(file); err != nil {
		return Config{}, fmt.Errorf("confscript: unable to run %v, cause %w", file, err)
	}
	tbl, ok := L.GetGlobal("config").(*lua.LTable)
	if !ok {
		return Config{}, fmt.Errorf("confscript: %v did not define a config table", file)
	}
	var cfg Config
	if err := gluamapper.Map(tbl, &cfg); err != nil {
		return Config{}, fmt.Errorf("confscript: unable to map config table from %v, cause %w", file, err)
	}
	return cfg, nil
}

// config scripts have less trust than the process itself: no io, no
// os, just enough lua to build a table
func injectBaseLibs(L *lua.LState) {
	for _, pair := range []struct {
		n string
		f lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // Must be first
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(pair.f),
			NRet:    0,
			Protect: true,
		}, lua.LString(pair.n)); err != nil {
			panic(err)
		}
	}
}
