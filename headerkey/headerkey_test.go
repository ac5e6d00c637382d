package headerkey

import (
	"net"
	"testing"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/stretchr/testify/require"

	"github.com/yanet-platform/matchtable/matchtable"
)

func buildTestPacket(t *testing.T) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip4 := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(192, 168, 1, 5),
	}
	tcp := &layers.TCP{
		SrcPort: 443,
		DstPort: 8080,
	}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip4))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip4, tcp))
	return buf.Bytes()
}

func TestEthernetExactParams(t *testing.T) {
	pkt := Decode(buildTestPacket(t))
	params, err := EthernetExactParams(pkt)
	require.NoError(t, err)

	built, _, _, err := matchtable.CanonicalKey(matchtable.VariantExact, 13, params)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x00,                                     // no VLAN tag
		0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, // dst MAC
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, // src MAC
	}, built)
}

func TestIPv4DestinationLPMParams(t *testing.T) {
	pkt := Decode(buildTestPacket(t))
	params, err := IPv4DestinationLPMParams(pkt)
	require.NoError(t, err)
	require.Equal(t, matchtable.ParamLPM, params[0].Type)
	require.Equal(t, []byte{192, 168, 1, 5}, params[0].Key)
	require.Equal(t, 32, params[0].PrefixLength)
}

func TestL4TernaryParams(t *testing.T) {
	pkt := Decode(buildTestPacket(t))
	params, err := L4TernaryParams(pkt)
	require.NoError(t, err)
	require.Len(t, params, 2)
	require.Equal(t, byte(layers.IPProtocolTCP), params[0].Key[0])
	require.Equal(t, []byte{0x1F, 0x90}, params[1].Key) // 8080
}

func TestEthernetExactParamsRequiresEthernetLayer(t *testing.T) {
	_, err := EthernetExactParams(gopacket.NewPacket([]byte{}, layers.LayerTypeIPv4, gopacket.Lazy))
	require.Error(t, err)
}
