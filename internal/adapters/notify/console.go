package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alejandrodnm/polywatch/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier escribiendo a stdout. Se usa en dry-run
// y para imprimir el histórico de alertas.
type Console struct {
	out io.Writer
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Notify imprime el mensaje con la hora local.
func (c *Console) Notify(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "[%s]\n%s\n\n", time.Now().Format("15:04:05"), text)
	return err
}

// PrintHistory imprime las alertas guardadas en una tabla.
func (c *Console) PrintHistory(alerts []domain.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(c.out, "no alerts recorded")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Time", "Trader", "Side", "USDC", "Odds", "Market", "Sent")

	for i, a := range alerts {
		sent := "yes"
		if !a.Delivered {
			sent = "no"
		}
		odds := domain.Notification{Price: a.Price}.Odds()

		table.Append(
			fmt.Sprintf("%d", i+1),
			a.CreatedAt.Local().Format("01-02 15:04:05"),
			domain.ShortAddress(a.Trader),
			a.Side,
			fmt.Sprintf("%.2f", a.AmountUSDC),
			odds,
			compactName(a.Market, 40),
			sent,
		)
	}
	table.Render()
}

// compactName recorta un nombre a max runas con "...".
func compactName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
