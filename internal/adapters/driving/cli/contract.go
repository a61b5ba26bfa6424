package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ensaio/internal/adapters/driving/format"
	"github.com/custodia-labs/ensaio/internal/core/domain"
)

var (
	contractJSON          bool
	contractListStatus    string
	contractListPayment   string
	contractFlagsCode     string
	contractFlagsClient   string
	contractFlagsDate     string
	contractFlagsPhotos   int
	contractFlagsExtra    int
	contractFlagsStatus   string
	contractFlagsLocation string
	contractFlagsAlbum    bool
	contractFlagsBook     bool
	contractFlagsRetro    bool
	contractFlagsValue    float64
	contractFlagsPayment  string
	contractFlagsFinished string
)

var contractCmd = &cobra.Command{
	Use:     "contract",
	Aliases: []string{"contracts"},
	Short:   "Manage contracts",
	Long: `Create, view, change and remove contracts on a running ensaio server.

Start the server first with 'ensaio serve'. Use --server to reach a server
other than the one configured in settings.`,
}

var contractListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contracts",
	Long: `List contracts in the order they were created.

Filter by workflow status and/or payment status:
  ensaio contract list --status aprovado
  ensaio contract list --payment pendente`,
	Args: cobra.NoArgs,
	RunE: runContractList,
}

var contractGetCmd = &cobra.Command{
	Use:   "get [contract-id]",
	Short: "Show a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractGet,
}

var contractSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search contracts by code or client name",
	Long: `Find contracts whose code or client name contains the query.
Matching ignores case. An empty query lists every contract.`,
	Args: cobra.ExactArgs(1),
	RunE: runContractSearch,
}

var contractAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new contract",
	Long: `Register a new contract.

Missing required fields are asked for interactively when running in a terminal.`,
	Args: cobra.NoArgs,
	RunE: runContractAdd,
}

var contractUpdateCmd = &cobra.Command{
	Use:   "update [contract-id]",
	Short: "Change fields of a contract",
	Long: `Change fields of a contract. Only the flags given are changed.

Example:
  ensaio contract update 2f1c... --status finalizado --payment pago --finished-at 2025-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: runContractUpdate,
}

var contractDeleteCmd = &cobra.Command{
	Use:     "delete [contract-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a contract",
	Args:    cobra.ExactArgs(1),
	RunE:    runContractDelete,
}

func init() {
	contractListCmd.Flags().StringVarP(&contractListStatus, "status", "s", "", "only contracts with this status")
	contractListCmd.Flags().StringVarP(&contractListPayment, "payment", "p", "", "only contracts with this payment status")

	for _, c := range []*cobra.Command{contractListCmd, contractGetCmd, contractSearchCmd} {
		c.Flags().BoolVar(&contractJSON, "json", false, "output as JSON")
	}

	for _, c := range []*cobra.Command{contractAddCmd, contractUpdateCmd} {
		addContractFieldFlags(c)
	}
	contractAddCmd.Flags().Lookup("status").DefValue = string(domain.StatusScheduled)
	contractAddCmd.Flags().Lookup("location").DefValue = string(domain.LocationStudio)
	contractAddCmd.Flags().Lookup("payment").DefValue = string(domain.PaymentPending)
	contractUpdateCmd.Flags().StringVar(&contractFlagsFinished, "finished-at", "",
		"completion time, RFC 3339 or YYYY-MM-DD")

	contractCmd.AddCommand(contractListCmd)
	contractCmd.AddCommand(contractGetCmd)
	contractCmd.AddCommand(contractSearchCmd)
	contractCmd.AddCommand(contractAddCmd)
	contractCmd.AddCommand(contractUpdateCmd)
	contractCmd.AddCommand(contractDeleteCmd)
	rootCmd.AddCommand(contractCmd)
}

func addContractFieldFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.StringVar(&contractFlagsCode, "code", "", "contract code")
	flags.StringVar(&contractFlagsClient, "client", "", "client name")
	flags.StringVar(&contractFlagsDate, "date", "", "session date, YYYY-MM-DD")
	flags.IntVar(&contractFlagsPhotos, "photos", 0, "contracted photos")
	flags.IntVar(&contractFlagsExtra, "extra-photos", 0, "additional photos")
	flags.StringVar(&contractFlagsStatus, "status", "", "agendado, realizado, tratamento, aprovacao, aprovado or finalizado")
	flags.StringVar(&contractFlagsLocation, "location", "", "estudio or externo")
	flags.BoolVar(&contractFlagsAlbum, "album", false, "album add-on")
	flags.BoolVar(&contractFlagsBook, "signature-book", false, "signature book add-on")
	flags.BoolVar(&contractFlagsRetro, "retrospective", false, "retrospective add-on")
	flags.Float64Var(&contractFlagsValue, "value", 0, "contract value")
	flags.StringVar(&contractFlagsPayment, "payment", "", "pendente, parcial or pago")
}

func runContractList(cmd *cobra.Command, _ []string) error {
	contracts, err := requireRemote()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var sets [][]domain.Contract
	if contractListStatus != "" {
		matched, err := contracts.FilterByStatus(ctx, domain.ContractStatus(contractListStatus))
		if err != nil {
			return explainRemote(fmt.Errorf("failed to list contracts: %w", err))
		}
		sets = append(sets, matched)
	}
	if contractListPayment != "" {
		matched, err := contracts.FilterByPaymentStatus(ctx, domain.PaymentStatus(contractListPayment))
		if err != nil {
			return explainRemote(fmt.Errorf("failed to list contracts: %w", err))
		}
		sets = append(sets, matched)
	}
	if len(sets) == 0 {
		all, err := contracts.List(ctx)
		if err != nil {
			return explainRemote(fmt.Errorf("failed to list contracts: %w", err))
		}
		sets = append(sets, all)
	}
	result := domain.Intersect(sets...)

	if contractJSON {
		return outputJSON(cmd, result)
	}
	outputContractTable(cmd, result)
	return nil
}

func runContractGet(cmd *cobra.Command, args []string) error {
	contracts, err := requireRemote()
	if err != nil {
		return err
	}

	c, err := contracts.Get(cmd.Context(), args[0])
	if err != nil {
		return explainRemote(fmt.Errorf("failed to get contract %s: %w", args[0], err))
	}

	if contractJSON {
		return outputJSON(cmd, c)
	}
	outputContractDetail(cmd, c)
	return nil
}

func runContractSearch(cmd *cobra.Command, args []string) error {
	contracts, err := requireRemote()
	if err != nil {
		return err
	}

	result, err := contracts.Search(cmd.Context(), args[0])
	if err != nil {
		return explainRemote(fmt.Errorf("search failed: %w", err))
	}

	if contractJSON {
		return outputJSON(cmd, result)
	}
	outputContractTable(cmd, result)
	return nil
}

func runContractAdd(cmd *cobra.Command, _ []string) error {
	contracts, err := requireRemote()
	if err != nil {
		return err
	}

	input := domain.ContractInput{
		ContractCode:     contractFlagsCode,
		ClientName:       contractFlagsClient,
		SessionDate:      contractFlagsDate,
		ContractedPhotos: contractFlagsPhotos,
		AdditionalPhotos: contractFlagsExtra,
		Status:           domain.ContractStatus(flagOrDefault(cmd, "status", contractFlagsStatus)),
		Location:         domain.Location(flagOrDefault(cmd, "location", contractFlagsLocation)),
		HasAlbum:         contractFlagsAlbum,
		HasSignatureBook: contractFlagsBook,
		HasRetrospective: contractFlagsRetro,
		ContractValue:    contractFlagsValue,
		PaymentStatus:    domain.PaymentStatus(flagOrDefault(cmd, "payment", contractFlagsPayment)),
	}

	if isInteractive() {
		if err := promptMissing(cmd, bufio.NewReader(cmd.InOrStdin()), &input); err != nil {
			return err
		}
	}

	if err := input.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			outputValidationError(cmd, verr)
		}
		return err
	}

	created, err := contracts.Create(cmd.Context(), input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			outputValidationError(cmd, verr)
		}
		return explainRemote(fmt.Errorf("failed to create contract: %w", err))
	}

	cmd.Printf("Contract created: %s\n", created.ID)
	return nil
}

func runContractUpdate(cmd *cobra.Command, args []string) error {
	contracts, err := requireRemote()
	if err != nil {
		return err
	}

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errors.New("nothing to update: pass at least one field flag")
	}

	updated, err := contracts.Update(cmd.Context(), args[0], patch)
	if err != nil {
		return explainRemote(fmt.Errorf("failed to update contract %s: %w", args[0], err))
	}

	cmd.Printf("Contract updated: %s\n", updated.ID)
	outputContractDetail(cmd, updated)
	return nil
}

func runContractDelete(cmd *cobra.Command, args []string) error {
	contracts, err := requireRemote()
	if err != nil {
		return err
	}

	removed, err := contracts.Delete(cmd.Context(), args[0])
	if err != nil {
		return explainRemote(fmt.Errorf("failed to delete contract %s: %w", args[0], err))
	}

	if !removed {
		cmd.Printf("Contract %s not found, nothing deleted.\n", args[0])
		return nil
	}
	cmd.Printf("Contract deleted: %s\n", args[0])
	return nil
}

// patchFromFlags turns the flags that were actually set into a patch.
func patchFromFlags(cmd *cobra.Command) (domain.ContractPatch, error) {
	var patch domain.ContractPatch
	flags := cmd.Flags()

	if flags.Changed("code") {
		patch.ContractCode = &contractFlagsCode
	}
	if flags.Changed("client") {
		patch.ClientName = &contractFlagsClient
	}
	if flags.Changed("date") {
		patch.SessionDate = &contractFlagsDate
	}
	if flags.Changed("photos") {
		patch.ContractedPhotos = &contractFlagsPhotos
	}
	if flags.Changed("extra-photos") {
		patch.AdditionalPhotos = &contractFlagsExtra
	}
	if flags.Changed("status") {
		status := domain.ContractStatus(contractFlagsStatus)
		patch.Status = &status
	}
	if flags.Changed("location") {
		location := domain.Location(contractFlagsLocation)
		patch.Location = &location
	}
	if flags.Changed("album") {
		patch.HasAlbum = &contractFlagsAlbum
	}
	if flags.Changed("signature-book") {
		patch.HasSignatureBook = &contractFlagsBook
	}
	if flags.Changed("retrospective") {
		patch.HasRetrospective = &contractFlagsRetro
	}
	if flags.Changed("value") {
		patch.ContractValue = &contractFlagsValue
	}
	if flags.Changed("payment") {
		payment := domain.PaymentStatus(contractFlagsPayment)
		patch.PaymentStatus = &payment
	}
	if flags.Changed("finished-at") {
		finished, err := format.ParseTimestamp(contractFlagsFinished)
		if err != nil {
			return patch, fmt.Errorf("--finished-at: %w", err)
		}
		patch.FinishedAt = &finished
	}

	return patch, nil
}

// flagOrDefault returns the flag's default when it was not given.
func flagOrDefault(cmd *cobra.Command, name, value string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return cmd.Flags().Lookup(name).DefValue
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptMissing asks for the required text and count fields that are still empty.
func promptMissing(cmd *cobra.Command, reader *bufio.Reader, input *domain.ContractInput) error {
	if strings.TrimSpace(input.ContractCode) == "" {
		input.ContractCode = prompt(cmd, reader, format.LabelContractCode)
	}
	if strings.TrimSpace(input.ClientName) == "" {
		input.ClientName = prompt(cmd, reader, format.LabelClientName)
	}
	if strings.TrimSpace(input.SessionDate) == "" {
		input.SessionDate = prompt(cmd, reader, format.LabelSessionDate+" (YYYY-MM-DD)")
	}
	if input.ContractedPhotos < 1 {
		if n, err := strconv.Atoi(prompt(cmd, reader, format.LabelContractedPhotos)); err == nil {
			input.ContractedPhotos = n
		}
	}
	if input.ContractValue == 0 {
		v, err := format.ParseAmount(prompt(cmd, reader, format.LabelContractValue))
		if err != nil {
			return fmt.Errorf("%s: %w", format.LabelContractValue, err)
		}
		input.ContractValue = v
	}
	return nil
}

func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Printf("%s: ", label)
	return readLine(reader)
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}
