package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pterm/pterm"
	"github.com/setdocai/setdoc-admin-go/internal/domain/entity"
	"github.com/setdocai/setdoc-admin-go/internal/shared/types"
)

// Páginas do painel, na ordem em que aparecem no menu.
const (
	pageAccountsUsers = "Gerenciar Contas e Usuários"
	pagePrompts       = "Gerenciar Prompts"
	pagePermissions   = "Gerenciar Permissões"
	pageBilling       = "Dashboard de Faturamento"
	pageLogout        = "Sair (Logout)"
)

// RunDashboard executa a sessão interativa: probe de login, depois o menu de
// páginas até o operador sair.
func (uc *AdminUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	if err := uc.runLogin(ctx, args.APIKey); err != nil {
		return err
	}

	for {
		// Segredo emitido na interação anterior: exibido uma única vez.
		if secret, ok := uc.session.TakeIssuedSecret(); ok {
			uc.console.DisplaySecret(secret.Label, secret.Secret)
		}

		if !uc.session.IsAuthenticated() {
			// A chave foi revogada no servidor durante a sessão.
			if err := uc.runLogin(ctx, ""); err != nil {
				return err
			}
			continue
		}

		page, err := uc.console.Select("Escolha uma página", []string{
			pageAccountsUsers, pagePrompts, pagePermissions, pageBilling, pageLogout,
		})
		if err != nil {
			return err
		}

		switch page {
		case pageAccountsUsers:
			uc.runAccountsPage(ctx)
		case pagePrompts:
			uc.runPromptsPage(ctx)
		case pagePermissions:
			uc.runPermissionsPage(ctx)
		case pageBilling:
			uc.runBillingPage(ctx, args)
		case pageLogout:
			uc.Logout()
			uc.console.LogInfo("Sessão encerrada.")
			return nil
		}
	}
}

// runLogin pede a chave quando necessário e valida com o probe.
func (uc *AdminUseCase) runLogin(ctx context.Context, apiKey string) error {
	for {
		if apiKey == "" {
			var err error
			apiKey, err = uc.console.AskSecret("Chave de API de Administrador")
			if err != nil {
				return err
			}
		}

		status := uc.console.Status("Validando chave...")
		err := uc.Login(ctx, apiKey)
		status.Stop()

		if err == nil {
			uc.console.LogSuccess("Acesso autorizado ao Painel de Gestão.")
			return nil
		}

		if types.IsTransport(err) {
			uc.console.LogError("Não foi possível conectar à API.")
		} else {
			uc.console.LogError("Chave de API inválida ou sem permissão de administrador.")
		}
		apiKey = ""
	}
}

// confirmArmed renders the armed action and asks for the second
// acknowledgement. Declining cancels with no effect.
func (uc *AdminUseCase) confirmArmed(ctx context.Context) {
	pending := uc.Pending()
	if pending == nil {
		return
	}

	ok, err := uc.console.Confirm(pending.Label)
	if err != nil || !ok {
		uc.CancelPending()
		uc.console.LogInfo("Ação cancelada.")
		return
	}

	status := uc.console.Status("Executando...")
	err = uc.ConfirmPending(ctx)
	status.Stop()

	if err != nil {
		uc.console.LogError("Falha ao executar a ação: %s", err)
		return
	}
	uc.console.LogSuccess("Ação executada com sucesso.")
}

// --- Página: Contas e Usuários ---

func (uc *AdminUseCase) runAccountsPage(ctx context.Context) {
	status := uc.console.Status("Buscando contas...")
	accounts, err := uc.ListAccounts(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao buscar contas: %s", err)
		return
	}

	uc.renderAccountsTable(accounts)

	action, err := uc.console.Select("O que deseja fazer?", []string{
		"Gerenciar conta selecionada", "Criar nova conta", "Voltar",
	})
	if err != nil || action == "Voltar" {
		return
	}

	switch action {
	case "Criar nova conta":
		uc.runCreateAccount(ctx)
	case "Gerenciar conta selecionada":
		account := uc.selectAccount(accounts)
		if account == nil {
			return
		}
		uc.runManageAccount(ctx, *account)
	}
}

func (uc *AdminUseCase) renderAccountsTable(accounts []entity.Account) {
	table := uc.console.CreateTable()
	table.AddColumn("Nome")
	table.AddColumn("Ativa")
	table.AddColumn("ID")
	table.AddColumn("Criada em")
	table.AddColumn("Cidade/UF")

	for _, acc := range accounts {
		location := acc.Cidade
		if acc.UF != "" {
			location = fmt.Sprintf("%s/%s", acc.Cidade, acc.UF)
		}
		table.AddRow(
			pterm.FgMagenta.Sprint(acc.Name),
			formatActive(acc.IsActive),
			acc.ID,
			acc.CreatedAt.Format("2006-01-02"),
			location,
		)
	}
	uc.console.Print(table.Render())
}

func (uc *AdminUseCase) runCreateAccount(ctx context.Context) {
	name, err := uc.console.Ask("Nome do Novo Cartório")
	if err != nil {
		return
	}
	if name == "" {
		uc.console.LogWarning("O nome da conta não pode ser vazio.")
		return
	}

	status := uc.console.Status("Criando conta...")
	account, err := uc.CreateAccount(ctx, entity.NewAccountInput{Name: name})
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao criar conta: %s", err)
		return
	}
	uc.console.LogSuccess("Conta '%s' criada (ID: %d).", account.Name, account.ID)
}

func (uc *AdminUseCase) runManageAccount(ctx context.Context, account entity.Account) {
	actionLabel := "Desativar"
	if !account.IsActive {
		actionLabel = "Reativar"
	}

	action, err := uc.console.Select(fmt.Sprintf("Conta '%s'", account.Name), []string{
		fmt.Sprintf("%s conta", actionLabel),
		"Listar e gerenciar usuários",
		"Criar novo usuário",
		"Voltar",
	})
	if err != nil || action == "Voltar" {
		return
	}

	switch action {
	case fmt.Sprintf("%s conta", actionLabel):
		uc.ArmSetAccountStatus(account.ID, !account.IsActive,
			fmt.Sprintf("%s a conta '%s'?", actionLabel, account.Name))
		uc.confirmArmed(ctx)
	case "Listar e gerenciar usuários":
		uc.runManageUsers(ctx, account)
	case "Criar novo usuário":
		uc.runCreateUser(ctx, account)
	}
}

func (uc *AdminUseCase) runManageUsers(ctx context.Context, account entity.Account) {
	status := uc.console.Status("Buscando usuários...")
	users, err := uc.ListUsers(ctx, account.ID)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao buscar usuários: %s", err)
		return
	}
	if len(users) == 0 {
		uc.console.LogInfo("Nenhum usuário nesta conta.")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Nome Completo")
	table.AddColumn("Email")
	table.AddColumn("Ativo")
	table.AddColumn("ID")
	for _, user := range users {
		table.AddRow(user.FullName, user.Email, formatActive(user.IsActive), user.ID)
	}
	uc.console.Print(table.Render())

	user := uc.selectUser(users)
	if user == nil {
		return
	}

	userActionLabel := "Desativar"
	if !user.IsActive {
		userActionLabel = "Reativar"
	}

	action, err := uc.console.Select(fmt.Sprintf("Usuário '%s'", user.FullName), []string{
		fmt.Sprintf("%s usuário", userActionLabel),
		"Regenerar chave de API",
		"Voltar",
	})
	if err != nil || action == "Voltar" {
		return
	}

	switch action {
	case fmt.Sprintf("%s usuário", userActionLabel):
		uc.ArmSetUserStatus(user.ID, !user.IsActive,
			fmt.Sprintf("%s o usuário '%s'?", userActionLabel, user.FullName))
	case "Regenerar chave de API":
		uc.ArmRegenerateKey(user.ID, user.FullName)
	}
	uc.confirmArmed(ctx)
}

func (uc *AdminUseCase) runCreateUser(ctx context.Context, account entity.Account) {
	fullName, err := uc.console.Ask("Nome Completo")
	if err != nil {
		return
	}
	email, err := uc.console.Ask("Email")
	if err != nil {
		return
	}
	password, err := uc.console.AskSecret("Senha")
	if err != nil {
		return
	}
	if fullName == "" || email == "" || password == "" {
		uc.console.LogWarning("Preencha todos os campos.")
		return
	}

	status := uc.console.Status("Criando usuário...")
	user, err := uc.CreateUser(ctx, entity.NewUserInput{
		FullName:  fullName,
		Email:     email,
		Password:  password,
		AccountID: account.ID,
	})
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao criar usuário: %s", err)
		return
	}
	uc.console.LogSuccess("Usuário '%s' criado para a conta '%s'.", user.FullName, account.Name)
}

// --- Página: Prompts ---

func (uc *AdminUseCase) runPromptsPage(ctx context.Context) {
	status := uc.console.Status("Buscando prompts...")
	prompts, err := uc.ListPrompts(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao buscar prompts: %s", err)
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("ID")
	table.AddColumn("Nome")
	table.AddColumn("Texto")
	for _, p := range prompts {
		text := p.PromptText
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		table.AddRow(p.ID, pterm.FgCyan.Sprint(p.Name), text)
	}
	uc.console.Print(table.Render())

	action, err := uc.console.Select("O que deseja fazer?", []string{
		"Criar prompt", "Editar prompt", "Excluir prompt", "Voltar",
	})
	if err != nil || action == "Voltar" {
		return
	}

	switch action {
	case "Criar prompt":
		uc.runCreatePrompt(ctx)
	case "Editar prompt":
		prompt := uc.selectPrompt(prompts)
		if prompt == nil {
			return
		}
		uc.runEditPrompt(ctx, *prompt)
	case "Excluir prompt":
		prompt := uc.selectPrompt(prompts)
		if prompt == nil {
			return
		}
		uc.ArmDeletePrompt(prompt.ID, fmt.Sprintf("Excluir o prompt '%s'? Esta ação é irreversível.", prompt.Name))
		uc.confirmArmed(ctx)
	}
}

func (uc *AdminUseCase) runCreatePrompt(ctx context.Context) {
	name, err := uc.console.Ask("Nome do Prompt")
	if err != nil {
		return
	}
	text, err := uc.console.Ask("Texto do Prompt")
	if err != nil {
		return
	}
	if name == "" || text == "" {
		uc.console.LogWarning("Preencha todos os campos.")
		return
	}

	status := uc.console.Status("Criando prompt...")
	prompt, err := uc.CreatePrompt(ctx, entity.PromptInput{Name: name, PromptText: text})
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao criar prompt: %s", err)
		return
	}
	uc.console.LogSuccess("Prompt '%s' criado (ID: %d).", prompt.Name, prompt.ID)
}

func (uc *AdminUseCase) runEditPrompt(ctx context.Context, prompt entity.Prompt) {
	name, err := uc.console.Ask(fmt.Sprintf("Nome (%s)", prompt.Name))
	if err != nil {
		return
	}
	if name == "" {
		name = prompt.Name
	}
	text, err := uc.console.Ask("Novo texto (vazio mantém o atual)")
	if err != nil {
		return
	}
	if text == "" {
		text = prompt.PromptText
	}

	status := uc.console.Status("Atualizando prompt...")
	err = uc.UpdatePrompt(ctx, prompt.ID, entity.PromptInput{Name: name, PromptText: text})
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao atualizar prompt: %s", err)
		return
	}
	uc.console.LogSuccess("Prompt atualizado.")
}

// --- Página: Permissões ---

func (uc *AdminUseCase) runPermissionsPage(ctx context.Context) {
	status := uc.console.Status("Buscando contas e prompts...")
	accounts, err := uc.ListAccounts(ctx)
	if err != nil {
		status.Stop()
		uc.console.LogError("Falha ao buscar contas: %s", err)
		return
	}
	prompts, err := uc.ListPrompts(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao buscar prompts: %s", err)
		return
	}

	account := uc.selectAccount(accounts)
	if account == nil {
		return
	}

	perms, err := uc.GetPermissions(ctx, account.ID)
	if err != nil {
		uc.console.LogError("Falha ao buscar permissões: %s", err)
		return
	}

	options := make([]string, 0, len(prompts))
	byOption := make(map[string]int, len(prompts))
	var preselected []string
	for _, p := range prompts {
		option := fmt.Sprintf("%s (ID: %d)", p.Name, p.ID)
		options = append(options, option)
		byOption[option] = p.ID
		if perms.Contains(p.ID) {
			preselected = append(preselected, option)
		}
	}

	uc.console.Printf("Editando permissões para: %s\n", pterm.FgMagenta.Sprint(account.Name))
	chosen, err := uc.console.MultiSelect("Selecione os prompts permitidos", options, preselected)
	if err != nil {
		return
	}

	promptIDs := make([]int, 0, len(chosen))
	for _, option := range chosen {
		promptIDs = append(promptIDs, byOption[option])
	}
	sort.Ints(promptIDs)

	status = uc.console.Status("Salvando permissões...")
	err = uc.SyncPermissions(ctx, account.ID, promptIDs)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao salvar permissões: %s", err)
		return
	}
	uc.console.LogSuccess("Permissões atualizadas com sucesso!")
}

// --- Página: Faturamento ---

func (uc *AdminUseCase) runBillingPage(ctx context.Context, args *types.CLIArgs) {
	status := uc.console.Status("Buscando contas...")
	accounts, err := uc.ListAccounts(ctx)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao buscar contas: %s", err)
		return
	}

	account := uc.selectAccount(accounts)
	if account == nil {
		return
	}

	days := args.BillingDays
	if days <= 0 {
		days = 30
	}
	today := time.Now()
	defaultStart := today.AddDate(0, 0, -days).Format("2006-01-02")
	defaultEnd := today.Format("2006-01-02")

	startDate := uc.askDate("Data de Início", defaultStart)
	endDate := uc.askDate("Data de Fim", defaultEnd)

	status = uc.console.Status("Gerando relatório...")
	report, err := uc.GetBillingReport(ctx, startDate, endDate, account.ID)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao gerar relatório mestre: %s", err)
		return
	}

	uc.renderBillingReport(account.Name, report)

	detailed, err := uc.console.Confirm("Buscar relatório detalhado (por job)?")
	if err != nil || !detailed {
		if args.ReportName != "" {
			uc.ExportSummaryReport(report, account.Name, args)
		}
		return
	}

	status = uc.console.Status("Gerando relatório detalhado...")
	detail, err := uc.GetDetailedBillingReport(ctx, account.ID, startDate, endDate)
	status.Stop()
	if err != nil {
		uc.console.LogError("Falha ao gerar relatório detalhado: %s", err)
		return
	}

	uc.renderDetailedReport(detail)

	if args.ReportName != "" {
		uc.ExportDetailedReport(detail, account.Name, args)
	}
}

func (uc *AdminUseCase) renderBillingReport(accountName string, report *entity.BillingReport) {
	uc.console.Printf("\nResumo do Período para: %s (%s a %s)\n",
		pterm.FgMagenta.Sprint(accountName), report.StartDate, report.EndDate)

	table := uc.console.CreateTable()
	table.AddColumn("Total de Jobs Processados")
	table.AddColumn("Total de Tokens")
	table.AddColumn("Custo Total")
	table.AddRow(
		report.Summary.TotalJobs,
		report.Summary.TotalTokens,
		pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprintf("R$ %.4f", report.Summary.TotalCost),
	)
	uc.console.Print(table.Render())

	if len(report.ByModel) == 0 {
		uc.console.LogInfo("Nenhum dado de faturamento encontrado para o período e conta selecionados.")
		return
	}

	modelTable := uc.console.CreateTable()
	modelTable.AddColumn("Modelo")
	modelTable.AddColumn("Jobs")
	modelTable.AddColumn("Tokens")
	modelTable.AddColumn("Custo")
	for _, m := range report.ByModel {
		modelTable.AddRow(
			pterm.FgCyan.Sprint(m.ModelName),
			m.Jobs,
			m.Tokens,
			fmt.Sprintf("R$ %.4f", m.Cost),
		)
	}
	uc.console.Println("\nDetalhes por Modelo")
	uc.console.Print(modelTable.Render())
}

func (uc *AdminUseCase) renderDetailedReport(report *entity.DetailedBillingReport) {
	if len(report.Breakdown) == 0 {
		uc.console.LogInfo("Nenhum job no período.")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Timestamp")
	table.AddColumn("Usuário")
	table.AddColumn("Job")
	table.AddColumn("Prompt")
	table.AddColumn("Modelo")
	table.AddColumn("Custo")

	for _, row := range report.Breakdown {
		table.AddRow(
			row.Timestamp.Format("2006-01-02 15:04"),
			row.UserName,
			row.JobID,
			row.PromptName,
			row.ModelName,
			fmt.Sprintf("R$ %.4f", row.Cost),
		)
	}
	uc.console.Print(table.Render())
}

// --- Auxiliares de seleção e entrada ---

func (uc *AdminUseCase) selectAccount(accounts []entity.Account) *entity.Account {
	if len(accounts) == 0 {
		uc.console.LogInfo("Nenhuma conta cadastrada.")
		return nil
	}
	options := make([]string, 0, len(accounts))
	byOption := make(map[string]entity.Account, len(accounts))
	for _, acc := range accounts {
		option := fmt.Sprintf("%s (ID: %d)", acc.Name, acc.ID)
		options = append(options, option)
		byOption[option] = acc
	}
	chosen, err := uc.console.Select("Selecione uma conta", options)
	if err != nil {
		return nil
	}
	account := byOption[chosen]
	return &account
}

func (uc *AdminUseCase) selectUser(users []entity.User) *entity.User {
	options := make([]string, 0, len(users))
	byOption := make(map[string]entity.User, len(users))
	for _, user := range users {
		option := fmt.Sprintf("%s (ID: %d)", user.FullName, user.ID)
		options = append(options, option)
		byOption[option] = user
	}
	chosen, err := uc.console.Select("Selecione um usuário", options)
	if err != nil {
		return nil
	}
	user := byOption[chosen]
	return &user
}

func (uc *AdminUseCase) selectPrompt(prompts []entity.Prompt) *entity.Prompt {
	if len(prompts) == 0 {
		uc.console.LogInfo("Nenhum prompt cadastrado.")
		return nil
	}
	options := make([]string, 0, len(prompts))
	byOption := make(map[string]entity.Prompt, len(prompts))
	for _, p := range prompts {
		option := fmt.Sprintf("%s (ID: %d)", p.Name, p.ID)
		options = append(options, option)
		byOption[option] = p
	}
	chosen, err := uc.console.Select("Selecione um prompt", options)
	if err != nil {
		return nil
	}
	prompt := byOption[chosen]
	return &prompt
}

// askDate pede uma data YYYY-MM-DD, mantendo o default em entrada vazia ou inválida.
func (uc *AdminUseCase) askDate(label, defaultValue string) string {
	value, err := uc.console.Ask(fmt.Sprintf("%s (%s)", label, defaultValue))
	if err != nil || value == "" {
		return defaultValue
	}
	if _, parseErr := time.Parse("2006-01-02", value); parseErr != nil {
		uc.console.LogWarning("Data inválida '%s', usando %s.", value, defaultValue)
		return defaultValue
	}
	return value
}

func formatActive(active bool) string {
	if active {
		return pterm.FgGreen.Sprint("sim")
	}
	return pterm.FgYellow.Sprint("não")
}
