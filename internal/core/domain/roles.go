package domain

// Role is one of the fixed identity roles carried in the verified claim.
type Role string

const (
	RoleUser         Role = "user"
	RoleAdmin        Role = "admin"
	RoleUserAdmin    Role = "user_admin"
	RoleFinanceAdmin Role = "finance_admin"
	RoleAuditAdmin   Role = "audit_admin"
)

// Permission names an operation gated by the access control table.
type Permission string

const (
	PermManageOwnWallet    Permission = "manage_own_wallet"
	PermWalletTransactions Permission = "wallet_transactions"
	PermWalletDeposit      Permission = "wallet_deposit"
	PermWalletWithdraw     Permission = "wallet_withdraw"
	PermWalletTransfer     Permission = "wallet_transfer"
	PermViewAllWallets     Permission = "view_all_wallets"
	PermViewUserWallets    Permission = "view_user_wallets"
	PermManageWalletStatus Permission = "manage_wallet_status"
	PermViewAllTxns        Permission = "view_all_transactions"
)

// permissions maps each permission to the roles allowed to exercise it.
// RoleAdmin is intentionally absent from some rows: it is granted everything
// implicitly by Allowed.
var permissions = map[Permission][]Role{
	PermManageOwnWallet:    {RoleUser, RoleUserAdmin, RoleFinanceAdmin, RoleAuditAdmin},
	PermWalletTransactions: {RoleUser, RoleUserAdmin, RoleFinanceAdmin, RoleAuditAdmin},
	PermWalletDeposit:      {RoleUser, RoleFinanceAdmin},
	PermWalletWithdraw:     {RoleUser, RoleFinanceAdmin},
	PermWalletTransfer:     {RoleUser, RoleFinanceAdmin},
	PermViewAllWallets:     {RoleFinanceAdmin, RoleAuditAdmin},
	PermViewUserWallets:    {RoleUserAdmin, RoleFinanceAdmin, RoleAuditAdmin},
	PermManageWalletStatus: {RoleFinanceAdmin},
	PermViewAllTxns:        {RoleFinanceAdmin, RoleAuditAdmin},
}

// Actor is the verified identity claim attached to a request: the subject id
// and role set the external identity layer vouched for.
type Actor struct {
	UserID string
	Roles  []string
}

// PrimaryRole returns the role recorded on ledger entries for audit context.
func (a Actor) PrimaryRole() string {
	if len(a.Roles) > 0 {
		return a.Roles[0]
	}
	return string(RoleUser)
}

// Allowed reports whether any of the caller's roles grants the permission.
// It never consults wallet or ledger state.
func Allowed(roles []string, perm Permission) bool {
	allowed, ok := permissions[perm]
	if !ok {
		return false
	}
	for _, r := range roles {
		if Role(r) == RoleAdmin {
			return true
		}
		for _, a := range allowed {
			if Role(r) == a {
				return true
			}
		}
	}
	return false
}
