package xmlutils

import (
	"errors"
	"strings"
	"testing"

	"fjacquet/fattura-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoBodies = `<?xml version="1.0" encoding="UTF-8"?>
<p:FatturaElettronica versione="FPR12" xmlns:p="http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2">
  <FatturaElettronicaHeader>
    <CedentePrestatore><DatiAnagrafici><Anagrafica><Denominazione>Studio Rossi</Denominazione></Anagrafica></DatiAnagrafici></CedentePrestatore>
  </FatturaElettronicaHeader>
  <FatturaElettronicaBody>
    <DatiGenerali><DatiGeneraliDocumento><Numero> 1 </Numero></DatiGeneraliDocumento></DatiGenerali>
  </FatturaElettronicaBody>
  <FatturaElettronicaBody>
    <DatiGenerali><DatiGeneraliDocumento><Numero>2</Numero></DatiGeneraliDocumento></DatiGenerali>
  </FatturaElettronicaBody>
</p:FatturaElettronica>`

func TestParse_BodiesAreQueriedIndependently(t *testing.T) {
	root, err := Parse(strings.NewReader(twoBodies), "lotto.xml")
	require.NoError(t, err)

	paths := DefaultFatturaPAPaths()
	bodies := Nodes(root, paths.Body)
	require.Len(t, bodies, 2)

	assert.Equal(t, "1", Text(bodies[0], paths.Document.Number))
	assert.Equal(t, "2", Text(bodies[1], paths.Document.Number))
	assert.Equal(t, "Studio Rossi", Text(root, paths.Supplier.Denominazione))
	assert.Equal(t, "", Text(bodies[0], paths.Document.Date))
	assert.Empty(t, Nodes(bodies[0], paths.Payment.Detail))
}

func TestParse_ByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(twoBodies)...)
	root, err := Parse(strings.NewReader(string(data)), "bom.xml")
	require.NoError(t, err)
	assert.Len(t, Values(root, "//Numero"), 2)
}

func TestParse_Latin1Prolog(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Root><Descrizione>Attivit\xe0</Descrizione></Root>"
	root, err := Parse(strings.NewReader(doc), "latin1.xml")
	require.NoError(t, err)
	assert.Equal(t, "Attività", Text(root, "//Descrizione"))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("<FatturaElettronica><Body>"), "broken.xml")
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "broken.xml", formatErr.FilePath)
	assert.Equal(t, ExpectedFormat, formatErr.ExpectedFormat)
}

func TestPath_IsCached(t *testing.T) {
	assert.Same(t, Path("//Numero"), Path("//Numero"))
	assert.Panics(t, func() { Path("//[") })
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Consulenza fiscale marzo", CleanText("  Consulenza\n\tfiscale   marzo "))
	assert.Equal(t, "", CleanText(" \n "))
}
