// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lumberjack

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/villefarm/lumberjack/consts"
	"github.com/villefarm/lumberjack/schema"
)

var ErrUnknownAccount = errors.New("unknown account type")

var (
	PlayerDataSchema = schema.New("PlayerData", 9264901878634267077,
		schema.Field{Name: "authority", Kind: schema.KindPublicKey},
		schema.Field{Name: "name", Kind: schema.KindString},
		schema.Field{Name: "level", Kind: schema.KindU8},
		schema.Field{Name: "xp", Kind: schema.KindU64},
		schema.Field{Name: "energy", Kind: schema.KindU64},
		schema.Field{Name: "gold", Kind: schema.KindU64},
		schema.Field{Name: "lastLogin", Kind: schema.KindI64},
	)
	PlotSchema = schema.New("Plot", 16631235073802654291,
		schema.Field{Name: "humanType", Kind: schema.KindString},
		schema.Field{Name: "plantedAt", Kind: schema.KindI64},
	)

	// AccountSchemas lists every account type the program owns.
	AccountSchemas = []*schema.Schema{PlayerDataSchema, PlotSchema}
)

type PlayerData struct {
	Authority solana.PublicKey `json:"authority"`
	Name      string           `json:"name"`
	Level     uint8            `json:"level"`
	Xp        uint64           `json:"xp"`
	Energy    uint64           `json:"energy"`
	Gold      uint64           `json:"gold"`
	LastLogin int64            `json:"lastLogin"`
}

func (p *PlayerData) Record() schema.Record {
	return schema.Record{
		"authority": p.Authority,
		"name":      p.Name,
		"level":     p.Level,
		"xp":        p.Xp,
		"energy":    p.Energy,
		"gold":      p.Gold,
		"lastLogin": p.LastLogin,
	}
}

func (p *PlayerData) Marshal() ([]byte, error) {
	return schema.Encode(PlayerDataSchema, p.Record())
}

// DecodePlayerData returns ok == false when [b] holds another account type.
func DecodePlayerData(b []byte) (*PlayerData, bool, error) {
	r, ok, err := schema.Decode(b, PlayerDataSchema)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &PlayerData{
		Authority: r.PublicKey("authority"),
		Name:      r.String("name"),
		Level:     r.Uint8("level"),
		Xp:        r.Uint64("xp"),
		Energy:    r.Uint64("energy"),
		Gold:      r.Uint64("gold"),
		LastLogin: r.Int64("lastLogin"),
	}, true, nil
}

type Plot struct {
	HumanType string `json:"humanType"`
	PlantedAt int64  `json:"plantedAt"`
}

// Empty reports whether nothing is growing on the plot.
func (p *Plot) Empty() bool {
	return p.HumanType == ""
}

func (p *Plot) Record() schema.Record {
	return schema.Record{
		"humanType": p.HumanType,
		"plantedAt": p.PlantedAt,
	}
}

func (p *Plot) Marshal() ([]byte, error) {
	return schema.Encode(PlotSchema, p.Record())
}

// DecodePlot returns ok == false when [b] holds another account type.
func DecodePlot(b []byte) (*Plot, bool, error) {
	r, ok, err := schema.Decode(b, PlotSchema)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &Plot{
		HumanType: r.String("humanType"),
		PlantedAt: r.Int64("plantedAt"),
	}, true, nil
}

// DecodeAccount probes every account schema and returns the decoded
// *PlayerData or *Plot.
func DecodeAccount(b []byte) (any, error) {
	if len(b) < consts.DiscriminatorLen {
		// let the schema report the truncation
		_, _, err := schema.Decode(b, PlayerDataSchema)
		return nil, err
	}
	s, ok := schema.Identify(b, AccountSchemas...)
	if !ok {
		return nil, fmt.Errorf("%w: discriminator %x", ErrUnknownAccount, b[:consts.DiscriminatorLen])
	}
	if s == PlayerDataSchema {
		p, _, err := DecodePlayerData(b)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	p, _, err := DecodePlot(b)
	if err != nil {
		return nil, err
	}
	return p, nil
}
