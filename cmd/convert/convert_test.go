package convert_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"fjacquet/fattura-csv/cmd/convert"
	"fjacquet/fattura-csv/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceXML = `<?xml version="1.0" encoding="UTF-8"?>
<FatturaElettronica>
<FatturaElettronicaHeader>
  <CedentePrestatore><DatiAnagrafici><Anagrafica><Denominazione>Vivaio Neri</Denominazione></Anagrafica></DatiAnagrafici></CedentePrestatore>
  <CessionarioCommittente><DatiAnagrafici><Anagrafica><Denominazione>Doiola sas</Denominazione></Anagrafica></DatiAnagrafici></CessionarioCommittente>
</FatturaElettronicaHeader>
<FatturaElettronicaBody>
  <DatiGenerali><DatiGeneraliDocumento>
    <TipoDocumento>TD04</TipoDocumento><Data>2024-06-03</Data><Numero>17</Numero>
    <ImportoTotaleDocumento>-110.00</ImportoTotaleDocumento>
  </DatiGeneraliDocumento></DatiGenerali>
  <DatiBeniServizi>
    <DettaglioLinee><Descrizione>Reso piante</Descrizione></DettaglioLinee>
    <DatiRiepilogo><AliquotaIVA>10.00</AliquotaIVA><ImponibileImporto>-100.00</ImponibileImporto><Imposta>-10.00</Imposta></DatiRiepilogo>
  </DatiBeniServizi>
</FatturaElettronicaBody>
</FatturaElettronica>`

var setup sync.Once

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setup.Do(func() {
		if root.Cmd.PersistentFlags().Lookup("input") == nil {
			root.Init()
		}
		root.Cmd.AddCommand(convert.Cmd)
	})
	t.Setenv("HOME", t.TempDir())
	root.SharedFlags = root.CommonFlags{}

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(args)
	err := root.Cmd.Execute()
	return out.String(), err
}

func TestConvertCommand_Metadata(t *testing.T) {
	assert.Equal(t, "convert", convert.Cmd.Use)
	assert.NotNil(t, convert.Cmd.RunE)
	assert.NotNil(t, convert.Cmd.Flags().Lookup("format"))
	assert.Contains(t, convert.Cmd.Long, "Example")
}

func TestConvertCommand_ToStdout(t *testing.T) {
	input := filepath.Join(t.TempDir(), "nc.xml")
	require.NoError(t, os.WriteFile(input, []byte(invoiceXML), 0o600))

	out, err := execute(t, "convert", "-i", input, "--format", "tsv", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"DO\tVivaio Neri\tNC 17\t03/06/2024\t03/06/2024\tReso piante\t100,00\t10,00\t\t\t110,00\tN/A\tNota di Credito",
		lines[1])
}

func TestConvertCommand_ToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "nc.xml")
	output := filepath.Join(dir, "out", "nc.xlsx")
	require.NoError(t, os.WriteFile(input, []byte(invoiceXML), 0o600))

	_, err := execute(t, "convert", "-i", input, "-o", output, "--log-level", "error")
	require.NoError(t, err)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConvertCommand_Errors(t *testing.T) {
	_, err := execute(t, "convert", "--log-level", "error")
	assert.ErrorContains(t, err, "input file must be specified")

	_, err = execute(t, "convert", "-i", filepath.Join(t.TempDir(), "missing.xml"), "--log-level", "error")
	assert.ErrorContains(t, err, "does not exist")
}
