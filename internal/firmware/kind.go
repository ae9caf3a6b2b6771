package firmware

import "strings"

// Kind - закрытый набор поддерживаемых вендоров.
type Kind int

const (
	KindDell Kind = iota
	KindHp
	KindOracle
)

func (k Kind) String() string {
	switch k {
	case KindDell:
		return "dell"
	case KindHp:
		return "hp"
	case KindOracle:
		return "oracle"
	default:
		return "unknown"
	}
}

// NeedsSession сообщает, нужен ли вендору браузерный сеанс.
func (k Kind) NeedsSession() bool {
	return k == KindDell || k == KindHp
}

// ParseKind сопоставляет название вендора без учета регистра.
// Частичных совпадений нет: "dell inc" - ошибка.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "dell":
		return KindDell, nil
	case "hp":
		return KindHp, nil
	case "oracle":
		return KindOracle, nil
	default:
		return 0, &VendorParseError{Vendor: s}
	}
}
