package argocd

import (
	"crypto/sha256"
	"encoding/hex"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const repositorySecretPrefix = "playctl-repo-"

// repositorySecretName is stable per URL so re-registering the same repository updates
// one Secret.
func repositorySecretName(repositoryURL string) string {
	sum := sha256.Sum256([]byte(repositoryURL))

	return repositorySecretPrefix + hex.EncodeToString(sum[:])[:10]
}

func buildRepositorySecret(repositoryURL string) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      repositorySecretName(repositoryURL),
			Namespace: Namespace,
			Labels: map[string]string{
				"argocd.argoproj.io/secret-type": "repository",
				"app.kubernetes.io/managed-by":   "playctl",
			},
		},
		StringData: map[string]string{
			"type": "git",
			"url":  repositoryURL,
		},
	}
}
