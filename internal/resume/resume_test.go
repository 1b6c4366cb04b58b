package resume

import (
	"testing"

	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `Jane Doe
jane.doe@example.com | +1 555-123-4567

Experience
Backend intern at Acme, 2 years of experience with Python and Docker.

Education
B.Sc. Computer Science

Projects
Built a React dashboard backed by PostgreSQL and Node.js.
`

func TestParse(t *testing.T) {
	p := Parse(sampleText)

	assert.Equal(t, "jane.doe@example.com", p.Email)
	assert.Equal(t, "+1 555-123-4567", p.Phone)
	assert.Equal(t, 2, p.ExperienceYears)
	assert.True(t, p.HasExperience)
	assert.True(t, p.HasEducation)
	assert.True(t, p.HasProjects)
	assert.Equal(t, []string{"Python", "React", "Node.js", "Docker"}, p.Skills)
}

func TestParse_EmptyText(t *testing.T) {
	p := Parse("")
	assert.Empty(t, p.Skills)
	assert.Empty(t, p.Email)
	assert.False(t, p.HasExperience)
}

func TestSkills_DefaultLevelAndCategory(t *testing.T) {
	got := Skills(user.ParsedResume{Skills: []string{"Go"}})
	require.Len(t, got, 1)
	assert.Equal(t, skill.LevelIntermediate, got[0].Level)
	assert.Equal(t, skill.CategoryTechnical, got[0].Category)
}

func TestContentType(t *testing.T) {
	ct, err := ContentType("CV.PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	_, err = ContentType("cv.txt")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("cv.png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractText_LegacyDoc(t *testing.T) {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0x00}, []byte("Skilled in Kubernetes and Linux")...)
	data = append(data, 0x00, 0x01)
	text, err := ExtractText("cv.doc", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Kubernetes and Linux")
}

func TestStripXMLTags(t *testing.T) {
	got := stripXMLTags(`<w:p><w:r><w:t>Go</w:t></w:r></w:p><w:p><w:r><w:t>SQL</w:t></w:r></w:p>`)
	assert.Contains(t, got, "Go")
	assert.Contains(t, got, "SQL")
	assert.NotContains(t, got, "<")
}

func TestAnalyze(t *testing.T) {
	u := user.User{
		Email:  "a@b.c",
		Skills: []skill.Skill{{Name: "Go"}},
		Resume: &user.Resume{FileName: "cv.pdf", Parsed: user.ParsedResume{HasEducation: true, ExperienceYears: 1}},
	}
	a := Analyze(u)

	assert.False(t, a.Completeness.HasContact)
	assert.True(t, a.Completeness.HasEducation)
	assert.True(t, a.Completeness.HasSkills)
	assert.Equal(t, 40, a.OverallScore)
	require.Len(t, a.Suggestions, 3)
	assert.Equal(t, "contact", a.Suggestions[0].Type)
	assert.Equal(t, "high", a.Suggestions[0].Priority)
}
