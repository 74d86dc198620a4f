package salary

import "testing"

func TestExtractWithCurrencyAndContext(t *testing.T) {
	e := New(Config{})

	value, score, ok := e.Score("Salário: R$ 8.000 por mês")
	if !ok {
		t.Fatalf("expected a salary candidate")
	}
	if value != 8000 {
		t.Fatalf("expected 8000, got %d", value)
	}
	if score <= 0 {
		t.Fatalf("expected a positive context score, got %d", score)
	}
}

func TestExtractHourlyRatePenalized(t *testing.T) {
	e := New(Config{})

	value, score, ok := e.Score("R$ 50/hora")
	if !ok {
		t.Fatalf("expected a candidate for the hourly rate")
	}
	if value != 50 {
		t.Fatalf("expected 50, got %d", value)
	}
	if score > 0 {
		t.Fatalf("expected the hourly penalty to cancel the currency bonus, got score %d", score)
	}
}

func TestExtractKSuffix(t *testing.T) {
	e := New(Config{})

	value, ok := e.Extract("faixa de 12k")
	if !ok || value != 12000 {
		t.Fatalf("expected 12000, got %d (ok=%v)", value, ok)
	}
}

func TestExtractThousandsSeparators(t *testing.T) {
	e := New(Config{})

	value, ok := e.Extract("remuneração de 10.500 mensal")
	if !ok || value != 10500 {
		t.Fatalf("expected 10500, got %d (ok=%v)", value, ok)
	}
}

func TestExtractSkipsBareSmallNumbers(t *testing.T) {
	e := New(Config{})

	if value, ok := e.Extract("3 vagas disponíveis, time de 12 pessoas"); ok {
		t.Fatalf("expected no candidate for bare counters, got %d", value)
	}
}

func TestExtractTieBrokenByHigherValue(t *testing.T) {
	e := New(Config{})

	// Both candidates carry the currency bonus and no context cues.
	value, ok := e.Extract("R$ 5.000 ou R$ 7.000")
	if !ok || value != 7000 {
		t.Fatalf("expected tie broken toward 7000, got %d (ok=%v)", value, ok)
	}
}

func TestExtractNothing(t *testing.T) {
	if value, ok := New(Config{}).Extract("vaga sem valores"); ok {
		t.Fatalf("expected no candidate, got %d", value)
	}
}

func TestExtractCustomMarker(t *testing.T) {
	e := New(Config{CurrencyMarker: "€", GoodContext: []string{"salary"}, BadContext: []string{"hour"}})

	value, score, ok := e.Score("salary € 4.500")
	if !ok || value != 4500 {
		t.Fatalf("expected 4500, got %d (ok=%v)", value, ok)
	}
	if score != currencyScore+goodContextScore {
		t.Fatalf("unexpected score %d", score)
	}
}
