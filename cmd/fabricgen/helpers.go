package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newtron-network/fabricgen/pkg/model"
	"github.com/newtron-network/fabricgen/pkg/settings"
	"github.com/newtron-network/fabricgen/pkg/store"
)

func summaryRow(d *model.Device) []string {
	return []string{
		d.Name,
		d.Role,
		d.MgmtIP,
		d.ASN,
		strconv.Itoa(len(d.Tenants)),
		strconv.Itoa(len(d.Interfaces)),
		strconv.Itoa(len(d.UnusedInterfaces)),
	}
}

func interfaceRow(i model.Interface) []string {
	po := ""
	switch {
	case i.IsPortChannel():
		po = "member " + i.Member
	case i.PONum > 0:
		po = strconv.Itoa(i.PONum)
	}
	return []string{i.Name, i.Type, i.IPVLAN, po, i.Descr}
}

func routeMapRow(e model.RouteMapEntry) []string {
	match := e.Match
	switch e.MatchKind {
	case model.MatchNone:
	case model.MatchInterface:
		match = e.MatchKind + " " + strings.Join(e.MatchInterfaces(), ", ")
	default:
		match = e.MatchKind + " " + e.Match
	}
	set := ""
	if e.SetAttr != "" {
		set = e.SetAttr + " " + e.SetValue
	}
	return []string{e.Name, strconv.Itoa(e.Seq), e.Action, match, set}
}

// destination describes where a store writes.
func destination(kind string, s *settings.Settings) string {
	if kind == store.KindRedis {
		return fmt.Sprintf("redis %s db %d", s.GetRedisAddr(), s.RedisDB)
	}
	return s.GetOutputDir()
}
