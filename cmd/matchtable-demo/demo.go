package main

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yanet-platform/matchtable/headerkey"
	"github.com/yanet-platform/matchtable/internal/config"
	"github.com/yanet-platform/matchtable/matchtable"
)

// dumpValue is the Dumper associated value every demo table stores; it is
// nothing more than a label rendered back out by Dump.
type dumpValue string

func (v dumpValue) Dump() string { return string(v) }

// runDemo builds one matchtable.Table per cfg.Tables entry, seeds it with a
// filler entry, and dumps its contents through log. Tables whose key width
// matches one of headerkey's adapters also get a packet-derived entry and a
// sample lookup. It returns once every table has been
// exercised; it does not loop, since the point of the command is to show
// the library's surface on a fixed config, not to serve traffic.
func runDemo(ctx context.Context, cfg *config.Config, dumpFilterPattern string, log *zap.SugaredLogger) error {
	var filter matchtable.DumpFilter
	if dumpFilterPattern != "" {
		f, err := matchtable.NewGlobFilter(dumpFilterPattern)
		if err != nil {
			return fmt.Errorf("failed to compile dump filter: %w", err)
		}
		filter = f
	}

	for _, tc := range cfg.Tables {
		capacity := tc.Capacity
		if capacity == 0 {
			capacity = config.CapacityForMemory(tc.MemoryLimit, tc.KeySize)
		}

		log.Infow("building table", "name", tc.Name, "variant", tc.Variant, "key_size", tc.KeySize, "capacity", capacity)

		if err := runDemoTable(ctx, tc, capacity, filter, log); err != nil {
			return fmt.Errorf("table %q: %w", tc.Name, err)
		}
	}

	return nil
}

// runDemoTable builds and exercises a single table, dispatching on its
// configured variant the way the director builds match units per-module in
// controlplane/pkg/yncp/modules.
func runDemoTable(ctx context.Context, tc config.TableConfig, capacity int, filter matchtable.DumpFilter, log *zap.SugaredLogger) error {
	switch tc.Variant {
	case config.VariantExact:
		return runDemoExact(ctx, tc, capacity, filter, log)
	case config.VariantLPM:
		return runDemoLPM(ctx, tc, capacity, filter, log)
	case config.VariantTernary:
		return runDemoTernary(ctx, tc, capacity, filter, log)
	default:
		return fmt.Errorf("unknown table variant %q", tc.Variant)
	}
}

func runDemoExact(ctx context.Context, tc config.TableConfig, capacity int, filter matchtable.DumpFilter, log *zap.SugaredLogger) error {
	t := matchtable.NewExactTable[dumpValue](capacity, int(tc.KeySize))

	params, err := fillerParams(int(tc.KeySize))
	if err != nil {
		return err
	}
	if _, err := matchtable.AddEntryWithBackoff(ctx, t, params, dumpValue("seed"), 0); err != nil {
		return fmt.Errorf("seeding exact table: %w", err)
	}

	if int(tc.KeySize) == 13 {
		pkt := headerkey.Decode(demoPacket())
		ethParams, err := headerkey.EthernetExactParams(pkt)
		if err == nil {
			if h, addErr := t.AddEntry(ethParams, dumpValue("eth-demo-entry"), 0); addErr == nil {
				log.Infow("added packet-derived exact entry", "table", tc.Name, "handle", h)
				if _, v, ok := t.Lookup(make([]byte, 13), func(dst []byte) {
					key, _, _, _ := matchtable.CanonicalKey(matchtable.VariantExact, 13, ethParams)
					copy(dst, key)
				}); ok {
					log.Infow("exact lookup hit", "table", tc.Name, "value", v.Dump())
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := t.Dump(&buf, filter); err != nil {
		return fmt.Errorf("dumping exact table: %w", err)
	}
	log.Infof("table %q:\n%s", tc.Name, buf.String())
	return nil
}

func runDemoLPM(ctx context.Context, tc config.TableConfig, capacity int, filter matchtable.DumpFilter, log *zap.SugaredLogger) error {
	t := matchtable.NewLPMTable[dumpValue](capacity, int(tc.KeySize))

	params, err := fillerLPMParams(int(tc.KeySize), 8*int(tc.KeySize)/2)
	if err != nil {
		return err
	}
	if _, err := matchtable.AddEntryWithBackoff(ctx, t, params, dumpValue("seed-route"), 0); err != nil {
		return fmt.Errorf("seeding LPM table: %w", err)
	}

	if int(tc.KeySize) == 4 {
		pkt := headerkey.Decode(demoPacket())
		ipParams, err := headerkey.IPv4DestinationLPMParams(pkt)
		if err == nil {
			narrow := ipParams
			narrow[0].PrefixLength = 24
			if h, addErr := t.AddEntry(narrow, dumpValue("ipv4-demo-route"), 0); addErr == nil {
				log.Infow("added packet-derived LPM entry", "table", tc.Name, "handle", h)
				if _, v, ok := t.Lookup(make([]byte, 4), func(dst []byte) {
					key, _, _, _ := matchtable.CanonicalKey(matchtable.VariantLPM, 4, ipParams)
					copy(dst, key)
				}); ok {
					log.Infow("LPM lookup hit", "table", tc.Name, "value", v.Dump())
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := t.Dump(&buf, filter); err != nil {
		return fmt.Errorf("dumping LPM table: %w", err)
	}
	log.Infof("table %q:\n%s", tc.Name, buf.String())
	return nil
}

func runDemoTernary(ctx context.Context, tc config.TableConfig, capacity int, filter matchtable.DumpFilter, log *zap.SugaredLogger) error {
	t := matchtable.NewTernaryTable[dumpValue](capacity, int(tc.KeySize))

	params, err := fillerTernaryParams(int(tc.KeySize))
	if err != nil {
		return err
	}
	if _, err := matchtable.AddEntryWithBackoff(ctx, t, params, dumpValue("seed-rule"), 10); err != nil {
		return fmt.Errorf("seeding ternary table: %w", err)
	}

	if int(tc.KeySize) == 3 {
		pkt := headerkey.Decode(demoPacket())
		l4Params, err := headerkey.L4TernaryParams(pkt)
		if err == nil {
			if h, addErr := t.AddEntry(l4Params, dumpValue("tcp-8080-rule"), 20); addErr == nil {
				log.Infow("added packet-derived ternary entry", "table", tc.Name, "handle", h)
				if _, v, ok := t.Lookup(make([]byte, 3), func(dst []byte) {
					key, _, _, _ := matchtable.CanonicalKey(matchtable.VariantTernary, 3, l4Params)
					copy(dst, key)
				}); ok {
					log.Infow("ternary lookup hit", "table", tc.Name, "value", v.Dump())
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := t.Dump(&buf, filter); err != nil {
		return fmt.Errorf("dumping ternary table: %w", err)
	}
	log.Infof("table %q:\n%s", tc.Name, buf.String())
	return nil
}

// fillerParams builds a single all-exact-bytes param sized to fill an
// exact-match key of width nbytesKey, used to seed every exact table
// regardless of whether a packet-shaped demo entry also applies.
func fillerParams(nbytesKey int) ([]matchtable.MatchKeyParam, error) {
	if nbytesKey <= 0 {
		return nil, fmt.Errorf("demo: table key_size must be positive, got %d", nbytesKey)
	}
	return []matchtable.MatchKeyParam{
		{Type: matchtable.ParamExact, Key: make([]byte, nbytesKey)},
	}, nil
}

// fillerLPMParams builds a single LPM param covering the whole key width at
// the given prefix length.
func fillerLPMParams(nbytesKey, prefixLength int) ([]matchtable.MatchKeyParam, error) {
	if nbytesKey <= 0 {
		return nil, fmt.Errorf("demo: table key_size must be positive, got %d", nbytesKey)
	}
	return []matchtable.MatchKeyParam{
		{Type: matchtable.ParamLPM, Key: make([]byte, nbytesKey), PrefixLength: prefixLength},
	}, nil
}

// fillerTernaryParams builds a single all-wildcard ternary param covering
// the whole key width, so it always matches regardless of lookup key.
func fillerTernaryParams(nbytesKey int) ([]matchtable.MatchKeyParam, error) {
	if nbytesKey <= 0 {
		return nil, fmt.Errorf("demo: table key_size must be positive, got %d", nbytesKey)
	}
	return []matchtable.MatchKeyParam{
		{Type: matchtable.ParamTernary, Key: make([]byte, nbytesKey), Mask: make([]byte, nbytesKey)},
	}, nil
}

// demoPacket returns a fixed Ethernet/IPv4/TCP frame used to exercise the
// headerkey adapters against a realistic header shape, mirroring the
// fixture packets built in headerkey's own tests.
func demoPacket() []byte {
	return []byte{
		0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, // dst MAC
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, // src MAC
		0x08, 0x00, // EtherType: IPv4
		0x45, 0x00, 0x00, 0x28, // version/IHL, DSCP/ECN, total length
		0x00, 0x00, 0x00, 0x00, // identification, flags/fragment offset
		0x40, 0x06, 0x00, 0x00, // TTL, protocol (TCP), checksum (unverified by Decode)
		10, 0, 0, 1, // src IP
		192, 168, 1, 5, // dst IP
		0x01, 0xbb, 0x1f, 0x90, // src port 443, dst port 8080
		0x00, 0x00, 0x00, 0x00, // seq
		0x00, 0x00, 0x00, 0x00, // ack
		0x50, 0x00, 0x00, 0x00, // data offset/flags, window
		0x00, 0x00, 0x00, 0x00, // checksum, urgent pointer
	}
}
