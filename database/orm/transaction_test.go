package orm

import "testing"

func TestLedgerOp(t *testing.T) {
	testCases := []struct {
		str string
		op  LedgerOp
	}{
		{str: "LIST_CROP", op: ListCrop},
		{str: "BUY_CROP", op: BuyCrop},
		{str: "REGISTER_STORAGE", op: RegisterStorage},
		{str: "UPDATE_AVAILABILITY", op: UpdateAvailability},
		{str: "DEACTIVATE_SLOT", op: DeactivateSlot},
		{str: "TRANSFER", op: InvalidOp},
	}
	for _, c := range testCases {
		if op := StrToOp(c.str); op != c.op {
			t.Errorf("StrToOp(%q) = %v, want %v", c.str, op, c.op)
		}
	}

	if s := LedgerOp(42).String(); s != "unknown" {
		t.Errorf("unexpected string for unknown op: %s", s)
	}
	if s := BuyCrop.String(); s != "BUY_CROP" {
		t.Errorf("unexpected string for buy op: %s", s)
	}
}
