package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShader(t *testing.T) {
	src := `<shader language="GLSL">
  <vertex><![CDATA[
void main() { gl_Position = ftransform(); }
]]></vertex>
  <fragment><![CDATA[
uniform sampler2D tex;
void main() { gl_FragColor = texture2D(tex, gl_TexCoord[0].xy); }
]]></fragment>
</shader>`

	s, err := ParseShader([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "GLSL", s.Language)
	assert.Contains(t, s.Vertex, "gl_Position")
	assert.Contains(t, s.Fragment, "gl_FragColor")
}

func TestParseShaderSingleStage(t *testing.T) {
	s, err := ParseShader([]byte(`<shader language="glsl"><fragment>void main(){}</fragment></shader>`))
	require.NoError(t, err)
	assert.Empty(t, s.Vertex)
	assert.NotEmpty(t, s.Fragment)
}

func TestParseShaderRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  string
	}{
		{name: "wrong language", src: `<shader language="HLSL"><vertex>x</vertex></shader>`, err: "language"},
		{name: "no sources", src: `<shader language="GLSL"></shader>`, err: "neither"},
		{name: "broken xml", src: `<shader language="GLSL">`, err: "parse"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseShader([]byte(test.src))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), test.err), "got %v", err)
		})
	}
}
