package maven

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/covgate/covgate/internal/fsutil"
)

// ErrNoPom reports a project directory without a pom.xml.
var ErrNoPom = errors.New("pom.xml not found")

// jacocoPlugin is the minimal plugin block inserted under
// <build><plugins>: agent preparation plus an XML report bound to the
// test phase.
const jacocoPlugin = `
            <plugin>
              <groupId>org.jacoco</groupId>
              <artifactId>jacoco-maven-plugin</artifactId>
              <version>0.8.10</version>
              <executions>
                <execution>
                  <goals>
                    <goal>prepare-agent</goal>
                  </goals>
                </execution>
                <execution>
                  <id>report</id>
                  <phase>test</phase>
                  <goals>
                    <goal>report</goal>
                  </goals>
                </execution>
              </executions>
            </plugin>
`

// ConfigureResult describes what ConfigureJacoco did.
type ConfigureResult struct {
	Changed bool   `json:"changed"`
	Backup  string `json:"backup,omitempty"`
	Message string `json:"message"`
}

// ConfigureJacoco ensures the JaCoCo plugin is present in the project's
// pom.xml. The original file is copied to pom.xml.bak before the first
// modification and an existing backup is never overwritten. A pom that
// already mentions the plugin is left alone, so repeated runs are
// harmless.
func ConfigureJacoco(projectDir string) (ConfigureResult, error) {
	pom := filepath.Join(projectDir, "pom.xml")
	raw, err := os.ReadFile(pom)
	if err != nil {
		if os.IsNotExist(err) {
			return ConfigureResult{}, fmt.Errorf("%w in %s", ErrNoPom, projectDir)
		}
		return ConfigureResult{}, fmt.Errorf("read %s: %w", pom, err)
	}
	text := string(raw)
	if strings.Contains(text, "jacoco-maven-plugin") {
		return ConfigureResult{Message: "JaCoCo already configured in pom.xml"}, nil
	}

	backup := pom + ".bak"
	copied, err := fsutil.CopyIfAbsent(pom, backup)
	if err != nil {
		return ConfigureResult{}, err
	}

	switch {
	case strings.Contains(text, "<plugins>"):
		text = strings.Replace(text, "<plugins>", "<plugins>\n"+jacocoPlugin, 1)
	case strings.Contains(text, "<build>"):
		text = strings.Replace(text, "<build>", "<build>\n  <plugins>\n"+jacocoPlugin+"\n  </plugins>", 1)
	default:
		text = strings.Replace(text, "</project>",
			"  <build>\n    <plugins>\n"+jacocoPlugin+"\n    </plugins>\n  </build>\n</project>", 1)
	}

	if err := fsutil.WriteAtomic(pom, []byte(text)); err != nil {
		return ConfigureResult{}, err
	}
	res := ConfigureResult{Changed: true, Message: "Inserted JaCoCo plugin into pom.xml (backup created)"}
	if copied {
		res.Backup = backup
	}
	return res, nil
}
