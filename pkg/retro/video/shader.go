package video

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/cloudretro/retrofront/pkg/os"
)

// Shader is an XML-described GLSL pair:
//
//	<shader language="GLSL">
//	  <vertex><![CDATA[...]]></vertex>
//	  <fragment><![CDATA[...]]></fragment>
//	</shader>
type Shader struct {
	XMLName  xml.Name `xml:"shader"`
	Language string   `xml:"language,attr"`
	Vertex   string   `xml:"vertex"`
	Fragment string   `xml:"fragment"`
}

// ParseShader reads a shader description from XML.
func ParseShader(data []byte) (*Shader, error) {
	var s Shader
	if err := xml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("shader parse: %w", err)
	}
	if !strings.EqualFold(s.Language, "GLSL") {
		return nil, fmt.Errorf("unsupported shader language: %q", s.Language)
	}
	if s.Vertex == "" && s.Fragment == "" {
		return nil, fmt.Errorf("shader has neither vertex nor fragment source")
	}
	return &s, nil
}

// LoadShader reads and parses a shader description file.
func LoadShader(path string) (*Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseShader(data)
}

// Compile builds a GL program from the shader pair. Either stage may be
// empty, in which case the fixed pipeline handles it.
func (s *Shader) Compile() (uint32, error) {
	program := gl.CreateProgram()
	for _, stage := range []struct {
		src string
		typ uint32
	}{
		{s.Vertex, gl.VERTEX_SHADER},
		{s.Fragment, gl.FRAGMENT_SHADER},
	} {
		if stage.src == "" {
			continue
		}
		sh, err := compileStage(stage.src, stage.typ)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		gl.DeleteShader(sh)
	}

	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		defer gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader link: %v", programLog(program))
	}
	return program, nil
}

func compileStage(src string, typ uint32) (uint32, error) {
	sh := gl.CreateShader(typ)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		defer gl.DeleteShader(sh)
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile: %v", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func programLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
