package ovg

import (
	"encoding/json"
	"errors"

	"github.com/bytedance/sonic"
)

// O OVG já respondeu com formatos diferentes conforme a versão da API:
// um array direto ou o array aninhado numa dessas chaves. A ordem aqui
// é a prioridade de extração.
var envelopeKeys = []string{"data", "aulas", "items", "results"}

var ErrUnknownEnvelope = errors.New("formato de resposta OVG desconhecido")

// NormalizeEnvelope reduz qualquer formato observado a uma lista plana.
func NormalizeEnvelope(body []byte) ([]RawClass, error) {
	var direct []RawClass
	if err := sonic.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var wrapped map[string]json.RawMessage
	if err := sonic.Unmarshal(body, &wrapped); err != nil {
		return nil, ErrUnknownEnvelope
	}

	for _, key := range envelopeKeys {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		var list []RawClass
		if err := sonic.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
	}
	return nil, ErrUnknownEnvelope
}
