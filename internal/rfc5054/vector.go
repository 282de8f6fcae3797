// Package rfc5054 holds the RFC 5054 Appendix B known-answer vector shared by
// the srp6 selftest and the protocol tests.
package rfc5054

import (
	"encoding/hex"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// Vector is one complete handshake transcript with fixed private values.
type Vector struct {
	Group    *srp.Group
	Digest   srp.DigestAlgorithm
	Identity []byte
	Password []byte
	Salt     []byte

	PrivateA []byte // a
	PrivateB []byte // b

	Multiplier []byte // k
	X          []byte
	Verifier   []byte // v
	PublicA    []byte
	PublicB    []byte
	Scrambler  []byte // u
	S          []byte
	M1         []byte
	M2         []byte
	SessionKey []byte // K
}

// AppendixB returns a fresh copy of the RFC 5054 Appendix B vector (1024-bit
// group, SHA-1). M1, M2 and K are not published in the RFC; they follow the
// padded construction.
func AppendixB() Vector {
	return Vector{
		Group:    srp.Group1024,
		Digest:   srp.SHA1,
		Identity: []byte("alice"),
		Password: []byte("password123"),
		Salt:     mustHex("BEB25379D1A8581EB5A727673A2441EE"),
		PrivateA: mustHex("60975527035CF2AD1989806F0407210BC81EDC04E2762A56AFD529DDDA2D4393"),
		PrivateB: mustHex("E487CB59D31AC550471E81F00F6928E01DDA08E974A004F49E61F5D105284D20"),

		Multiplier: mustHex("7556AA045AEF2CDD07ABAF0F665C3E818913186F"),
		X:          mustHex("94B7555AABE9127CC58CCF4993DB6CF84D16C124"),
		Verifier: mustHex(
			"7E273DE8696FFC4F4E337D05B4B375BEB0DDE1569E8FA00A9886D8129BADA1F1" +
				"822223CA1A605B530E379BA4729FDC59F105B4787E5186F5C671085A1447B52A" +
				"48CF1970B4FB6F8400BBF4CEBFBB168152E08AB5EA53D15C1AFF87B2B9DA6E04" +
				"E058AD51CC72BFC9033B564E26480D78E955A5E29E7AB245DB2BE315E2099AFB"),
		PublicA: mustHex(
			"61D5E490F6F1B79547B0704C436F523DD0E560F0C64115BB72557EC44352E890" +
				"3211C04692272D8B2D1A5358A2CF1B6E0BFCF99F921530EC8E39356179EAE45E" +
				"42BA92AEACED825171E1E8B9AF6D9C03E1327F44BE087EF06530E69F66615261" +
				"EEF54073CA11CF5858F0EDFDFE15EFEAB349EF5D76988A3672FAC47B0769447B"),
		PublicB: mustHex(
			"BD0C61512C692C0CB6D041FA01BB152D4916A1E77AF46AE105393011BAF38964" +
				"DC46A0670DD125B95A981652236F99D9B681CBF87837EC996C6DA04453728610" +
				"D0C6DDB58B318885D7D82C7F8DEB75CE7BD4FBAA37089E6F9C6059F388838E7A" +
				"00030B331EB76840910440B1B27AAEAEEB4012B7D7665238A8E3FB004B117B58"),
		Scrambler: mustHex("CE38B9593487DA98554ED47D70A7AE5F462EF019"),
		S: mustHex(
			"B0DC82BABCF30674AE450C0287745E7990A3381F63B387AAF271A10D233861E3" +
				"59B48220F7C4693C9AE12B0A6F67809F0876E2D013800D6C41BB59B6D5979B5C" +
				"00A172B4A2A5903A0BDCAF8A709585EB2AFAFA8F3499B200210DCC1F10EB3394" +
				"3CD67FC88A2F39A4BE5BEC4EC0A3212DC346D7E474B29EDE8A469FFECA686E5A"),
		M1:         mustHex("B46A783846B7E569FF8F9B44AB8D88EDEB085A65"),
		M2:         mustHex("1C909742F644F2F93516F5490DFE954E82BBE17F"),
		SessionKey: mustHex("017EEFA1CEFC5C2E626E21598987F31E0F1B11BB"),
	}
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
