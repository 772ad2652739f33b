package partystate

// Role identifies which side of the two-party protocol a process is
// playing. By convention the Responder applies Cascade's corrective
// bit flips; the Initiator's local key is never mutated by
// reconciliation.
type Role int

const (
	RoleInitiator Role = iota
	RoleResponder
)

func (r Role) String() string {
	if r == RoleInitiator {
		return "initiator"
	}
	return "responder"
}
