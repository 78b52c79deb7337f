package postgres

import "github.com/api-sage/ledgerdesk/src/internal/adapter/repository/repo_interfaces"

var (
	_ repo_interfaces.BankAccountRepository = (*BankAccountRepository)(nil)
	_ repo_interfaces.TransactionRepository = (*TransactionRepository)(nil)
	_ repo_interfaces.UserRepository        = (*UserRepository)(nil)
	_ repo_interfaces.CompanyRepository     = (*CompanyRepository)(nil)
	_ repo_interfaces.ProjectRepository     = (*ProjectRepository)(nil)
	_ repo_interfaces.TaskRepository        = (*TaskRepository)(nil)
)
