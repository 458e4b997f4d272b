package signature

import (
	"encoding/hex"
	"testing"
)

func TestVerify_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(""),
		[]byte("{}"),
		[]byte(`{"eventType":"project.booked","client":{"email":"a@x.com"}}`),
		make([]byte, 4096),
	}

	for _, p := range payloads {
		sig := Sign(p, "shared-secret")
		if !Verify(p, sig, "shared-secret") {
			t.Errorf("Verify(Sign(p)) = false for payload %q", p)
		}
	}
}

func TestVerify_MutatedPayload(t *testing.T) {
	payload := []byte(`{"eventType":"project.booked"}`)
	sig := Sign(payload, "shared-secret")

	for i := range payload {
		mutated := append([]byte(nil), payload...)
		mutated[i] ^= 0x01
		if Verify(mutated, sig, "shared-secret") {
			t.Fatalf("mutated payload at byte %d still verified", i)
		}
	}
}

func TestVerify_MutatedSignature(t *testing.T) {
	payload := []byte(`{"eventType":"project.booked"}`)
	sig := Sign(payload, "shared-secret")

	raw, _ := hex.DecodeString(sig)
	for i := range raw {
		mutated := append([]byte(nil), raw...)
		mutated[i] ^= 0x01
		if Verify(payload, hex.EncodeToString(mutated), "shared-secret") {
			t.Fatalf("mutated signature at byte %d still verified", i)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	payload := []byte("body")
	sig := Sign(payload, "secret-a")
	if Verify(payload, sig, "secret-b") {
		t.Fatal("signature verified under wrong secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not-hex",
		"abcd",       // too short
		"zzzz" + Sign([]byte("body"), "s")[4:], // invalid hex chars
	}
	for _, sig := range cases {
		if Verify([]byte("body"), sig, "s") {
			t.Errorf("malformed signature %q verified", sig)
		}
	}
}
