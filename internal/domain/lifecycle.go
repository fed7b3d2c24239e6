package domain

// AllowedTransitions lists the next statuses an operator may stage from the
// given one. Concluído and Cancelado are terminal. The remote store does not
// enforce these rules; they are operator guidance.
func AllowedTransitions(from OrderStatus) []OrderStatus {
	switch from {
	case StatusAguardando:
		return []OrderStatus{StatusEmPreparo, StatusCancelado}
	case StatusEmPreparo:
		return []OrderStatus{StatusConcluido, StatusCancelado}
	default:
		return nil
	}
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range AllowedTransitions(from) {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s OrderStatus) bool {
	return s == StatusConcluido || s == StatusCancelado
}
