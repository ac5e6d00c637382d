// Package headerkey is a concrete build_key-style adapter: it turns a
// decoded gopacket.Packet into the []matchtable.MatchKeyParam sequences the
// matchtable package's key construction expects.
//
// matchtable itself never imports gopacket or any other packet-layer type:
// the core consumes only a key-extraction callback, and the
// packet/header-value-vector type is an external collaborator. This
// package is that collaborator.
package headerkey

import (
	"fmt"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/yanet-platform/matchtable/matchtable"
)

// Decode parses raw Ethernet-framed bytes into a gopacket.Packet with lazy
// decoding, matching the NewPacket usage in tests/migration/converter/lib's
// PCAP equivalence tests.
func Decode(data []byte) gopacket.Packet {
	return gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Lazy)
}

// EthernetExactParams builds the params for an exact-match table keyed on
// destination and source MAC address (13 bytes total): a one-byte VLAN-tag
// VALID field followed by two 6-byte EXACT fields.
func EthernetExactParams(pkt gopacket.Packet) ([]matchtable.MatchKeyParam, error) {
	eth, ok := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	if !ok {
		return nil, fmt.Errorf("headerkey: packet has no Ethernet layer")
	}

	valid := []byte{0x00}
	if _, hasVLAN := pkt.Layer(layers.LayerTypeDot1Q).(*layers.Dot1Q); hasVLAN {
		valid = []byte{0x01}
	}

	return []matchtable.MatchKeyParam{
		{Type: matchtable.ParamValid, Key: valid},
		{Type: matchtable.ParamExact, Key: []byte(eth.DstMAC)},
		{Type: matchtable.ParamExact, Key: []byte(eth.SrcMAC)},
	}, nil
}

// IPv4DestinationLPMParams builds the params for an LPM table keyed on the
// destination IPv4 address, with the LPM param's prefix length fixed at the
// address's full 32 bits — callers installing a route typically build their
// own params with a shorter PrefixLength; this helper is for building a
// lookup key from a live packet, which always matches the full address.
func IPv4DestinationLPMParams(pkt gopacket.Packet) ([]matchtable.MatchKeyParam, error) {
	ip4, ok := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return nil, fmt.Errorf("headerkey: packet has no IPv4 layer")
	}

	dst := ip4.DstIP.To4()
	if dst == nil {
		return nil, fmt.Errorf("headerkey: IPv4 destination address is not 4 bytes")
	}

	return []matchtable.MatchKeyParam{
		{Type: matchtable.ParamLPM, Key: []byte(dst), PrefixLength: 32},
	}, nil
}

// L4TernaryParams builds the params for a ternary table keyed on IP
// protocol number and destination port: an EXACT protocol byte and a
// TERNARY destination-port field with an all-ones mask (an installed rule
// may use a narrower mask to match a port range).
func L4TernaryParams(pkt gopacket.Packet) ([]matchtable.MatchKeyParam, error) {
	ip4, ok := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return nil, fmt.Errorf("headerkey: packet has no IPv4 layer")
	}

	var port uint16
	switch {
	case pkt.Layer(layers.LayerTypeTCP) != nil:
		port = uint16(pkt.Layer(layers.LayerTypeTCP).(*layers.TCP).DstPort)
	case pkt.Layer(layers.LayerTypeUDP) != nil:
		port = uint16(pkt.Layer(layers.LayerTypeUDP).(*layers.UDP).DstPort)
	default:
		return nil, fmt.Errorf("headerkey: packet has no TCP or UDP layer")
	}

	portBytes := []byte{byte(port >> 8), byte(port)}
	return []matchtable.MatchKeyParam{
		{Type: matchtable.ParamExact, Key: []byte{byte(ip4.Protocol)}},
		{Type: matchtable.ParamTernary, Key: portBytes, Mask: []byte{0xff, 0xff}},
	}, nil
}
