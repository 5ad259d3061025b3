package types

// ConsoleInterface define a interface para saída e entrada no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplaySecret(label, secret string)

	// Interactive input. AskSecret masks the typed value.
	Ask(label string) (string, error)
	AskSecret(label string) (string, error)
	Select(label string, options []string) (string, error)
	MultiSelect(label string, options []string, preselected []string) ([]string, error)
	Confirm(label string) (bool, error)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
