package srp_test

import (
	"encoding/hex"

	"github.com/fzdarsky/srp6a/internal/rfc5054"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

type testVector struct {
	group    *srp.Group
	digest   srp.DigestAlgorithm
	identity []byte
	password []byte
	salt     []byte
	a        []byte
	b        []byte
	k        []byte
	x        []byte
	v        []byte
	bigA     []byte
	bigB     []byte
	u        []byte
	S        []byte
	M1       []byte
	M2       []byte
	K        []byte
}

// rfc5054Vector is RFC 5054 Appendix B.
var rfc5054Vector = fromRFC5054(rfc5054.AppendixB())

func fromRFC5054(v rfc5054.Vector) testVector {
	return testVector{
		group:    v.Group,
		digest:   v.Digest,
		identity: v.Identity,
		password: v.Password,
		salt:     v.Salt,
		a:        v.PrivateA,
		b:        v.PrivateB,
		k:        v.Multiplier,
		x:        v.X,
		v:        v.Verifier,
		bigA:     v.PublicA,
		bigB:     v.PublicB,
		u:        v.Scrambler,
		S:        v.S,
		M1:       v.M1,
		M2:       v.M2,
		K:        v.SessionKey,
	}
}

// sha256Vector reuses the Appendix B inputs with the 2048-bit group and SHA-256.
var sha256Vector = testVector{
	group:    srp.Group2048,
	digest:   srp.SHA256,
	identity: []byte("alice"),
	password: []byte("password123"),
	salt:     mustHex("BEB25379D1A8581EB5A727673A2441EE"),
	a:        mustHex("60975527035CF2AD1989806F0407210BC81EDC04E2762A56AFD529DDDA2D4393"),
	b:        mustHex("E487CB59D31AC550471E81F00F6928E01DDA08E974A004F49E61F5D105284D20"),
	k:        mustHex("05B9E8EF059C6B32EA59FC1D322D37F04AA30BAE5AA9003B8321E21DDB04E300"),
	x:        mustHex("65AC38DFF8BC34AE0F259E91FBD0F4CA2FA43081C9050CEC7CAC20D015F303"),
	v: mustHex(
		"400272A61E185E23784E28A16A149DC60A3790FD45856F79A7070C44F7DA1CA2" +
		"2F711CD5BC3592171A875C7812472916DE2DCFAFC22F7DEAD8F578F197054793" +
		"6F9EEC686BB3DF66FF57F724F6B907E83530812B4FFDBF614153E9FBFED4FC6D" +
		"972DA70BB23F6CCD36AD08B72567FE6BCD2BACB713F2CDB9DC8F81F897F489BB" +
		"393067D66237A3E061902E72096D5AC1CD1D06C1CD648F7E56DA5EC6E0094C1B" +
		"448C5D63AD2ADDEC1E3D9A3AA7118A0410E53434DDBFFC60EEF5B82548BDA5A2" +
		"F513209484D3221982CA74668A4D37330CC9CFE3B10F0DB368293E43026E3A01" +
		"440AC732BC1CFB983B512D10296F6951EC5E567329AF8E58D7C21EA6C778B0BD"),
	bigA: mustHex(
		"4B700F8D48E69C9AAE40C684AC7C7C03121E2B7602EB4C3514804CCADA0ED401" +
		"9193A351ECC65A6F854EDE91EB096E721B22D701C7ADC64E9CEDACD75F2E26BB" +
		"2F5E45DD53DC8DBEAFFFE82AA49FCA0573444691212537A73CF80E2503925820" +
		"5A7EDF4749B30ADAF25877C62FCD09D6613598BCD4BAF2A9727A53706A278148" +
		"992B2ABB23AD5D512D269E16CA11BC0895B5A3B5EC4721CDE40A8C39C796E94F" +
		"0BE86DBBEB33DA7037018983921ABA3F5053195D5AC1DA4E567E3C0E75D9E060" +
		"9F92E850657B2BE4771F415B9CACC5C1ECEDC30133BF6474F5022C6519D78076" +
		"0CA4D8D3B966B034BD73877C1B3B33F474B9C3C5299A1968F3E6CD3BFE84445A"),
	bigB: mustHex(
		"410813E3063F3B4532F2D36413749F39C26C5CEEB1346D3995003C74544C30CB" +
		"A318F981281607AE68DBDC3BEE9F0544ADA6B13D8AC33217B670973152CF03EF" +
		"03797615E81DD305342C2E3BB035321D1FD717952E702B09682102D0A5AA25DC" +
		"EE01784A32B0684F75626CA3BF8AEC874F2DC11F8926944B06F9948E8AD76490" +
		"25A58CD9DCCDB6B210DE00E2283E72BAAF93A39B0417DFD1888F841F43D7D41C" +
		"75B58F654CCB2E8B9C875C42EDC34FD3796200312F2ABD19B7E2C54B5702CD1A" +
		"7F4D79FDF73BC418C96466BA122D45474AB6DB553417715617F6C3B4A8764279" +
		"F086ACC655E396F85812C90F6F932CE0586168C5DECCC9F8BEB6891AD13F7CAF"),
	u: mustHex("D56E895D00CB8A9EA81F0C9967522018BCA195A485CD59687EBB2A3F5ECDA88B"),
	S: mustHex(
		"30ABE90D7091D4617EA8B93F0E649F7FD1CA069BCA471E9DAF46F5FA5C2B31F0" +
		"5E650DA378C0280F144E893ED8137111FF91842C01CE5E3ED8714B4CB23E2B26" +
		"58230C53153948663239A31B9FDB503325F3BEE65F97D081AB90C9453D79C617" +
		"58E622F4FA4A76B91DFBCF9AB4DAC654968756F20B620B500837E297BD51B2D4" +
		"FDE98267703EDF69674C3F0E747F910FFEC303BC15E004ECAADF3782CD9D2994" +
		"ED606B7530AD0DD3E9D6DE7436FABEA3215A13B77A7C59D7FD20AC1DF350AD8B" +
		"8CDCAD5DED683073DC2DADEDA1350E7D72619BBE652EE53813CB7F3295ADA69F" +
		"53ED595DE4DE4EA23FFA964157A42785FF6217268F5A912551BA4ADB57E8773C"),
	M1: mustHex("2D38E9A6F775FDA1ECB6DC4C222652563C7D58AA27E2F7D5E0FA15B3B88ECABF"),
	M2: mustHex("512C004CF073732D860DC8063FA895E27150F490FA388C0C687AE7674DFDD08A"),
	K: mustHex("899F35B485D44D577957E87CFDD48343D97EA2E0C3E8620594E0B8DA9CE5DA98"),
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
