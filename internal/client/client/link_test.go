package client

import (
	"testing"

	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShareLink(t *testing.T) {
	const domain = "www.swisstransfer.com"
	const id = "3215702a-bed4-4cec-9eb6-d731048a2312"

	got, err := ParseShareLink("https://"+domain+"/d/"+id, domain)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	invalid := map[string]string{
		"trailing slash":    "https://" + domain + "/d/" + id + "/",
		"wrong scheme":      "http://" + domain + "/d/" + id,
		"wrong segment":     "https://" + domain + "/f/" + id,
		"no segment":        "https://" + domain + "/" + id,
		"truncated uuid":    "https://" + domain + "/d/3215702a-bed4-4cec-9eb6-d731048a231",
		"other domain":      "https://www.swisstransfer.ch/d/" + id,
		"no scheme":         domain + "/d/" + id,
		"uppercase uuid":    "https://" + domain + "/d/3215702A-BED4-4CEC-9EB6-D731048A2312",
		"braced uuid":       "https://" + domain + "/d/{" + id + "}",
		"query string":      "https://" + domain + "/d/" + id + "?x=1",
		"not a uuid":        "https://" + domain + "/d/zzzzzzzz-bed4-4cec-9eb6-d731048a2312",
		"unparseable":       "https://%zz",
	}
	for name, link := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseShareLink(link, domain)
			require.ErrorIs(t, err, common.ErrInvalidLink)
			assert.False(t, IsShareLink(link, domain))
		})
	}
}

func TestBuildShareLink_RoundTrip(t *testing.T) {
	const id = "8b3b3b3b-3b3b-3b3b-3b3b-3b3b3b3b3b3b"
	link := BuildShareLink("www.swisstransfer.com", id)
	assert.Equal(t, "https://www.swisstransfer.com/d/"+id, link)

	got, err := ParseShareLink(link, "www.swisstransfer.com")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestLinkID(t *testing.T) {
	assert.Equal(t, "abc", LinkID("https://host/d/abc"))
	assert.Equal(t, "abc", LinkID("https://host/d/abc/"))
	assert.Equal(t, "abc", LinkID("abc"))
}
