package s3

import (
	"fmt"

	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Strategy — способ аутентификации в хранилище. Выбирается один раз на
// старте процесса чистой функцией от конфигурации; после выбора
// переключение на другую стратегию запрещено, чтобы не маскировать
// ошибки настройки.
type Strategy int

const (
	// StrategyAssumeRole — выделенная сервисная identity: пара ключей +
	// ARN роли, креды получаем через STS.
	StrategyAssumeRole Strategy = iota + 1
	// StrategyStaticKey — статический ключ аккаунта.
	StrategyStaticKey
	// StrategyIAM — identity хостинговой платформы (instance metadata).
	StrategyIAM
	// StrategyChain — дефолтная цепочка: окружение → shared-файл → IAM.
	StrategyChain
)

func (s Strategy) String() string {
	switch s {
	case StrategyAssumeRole:
		return "assume_role"
	case StrategyStaticKey:
		return "static_key"
	case StrategyIAM:
		return "iam"
	case StrategyChain:
		return "chain"
	default:
		return "unknown"
	}
}

// SelectStrategy — детерминированный выбор по приоритету, побеждает
// первый подходящий набор кредов (не «самый безопасный»): оператор
// может форсировать конкретный путь, задав только его переменные.
func SelectStrategy(cfg Config) Strategy {
	switch {
	case cfg.RoleARN != "" && cfg.AccessKey != "" && cfg.SecretKey != "":
		return StrategyAssumeRole
	case cfg.AccessKey != "" && cfg.SecretKey != "":
		return StrategyStaticKey
	case cfg.UseIAM:
		return StrategyIAM
	default:
		return StrategyChain
	}
}

// newCredentials строит креды для уже выбранной стратегии. Ошибка здесь —
// ошибка конфигурации: никакого перехода на следующую стратегию.
func newCredentials(cfg Config, st Strategy) (*credentials.Credentials, error) {
	switch st {
	case StrategyAssumeRole:
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		sessionName := cfg.SessionName
		if sessionName == "" {
			sessionName = "doc-gateway"
		}
		creds, err := credentials.NewSTSAssumeRole(fmt.Sprintf("%s://%s", scheme, cfg.Endpoint), credentials.STSAssumeRoleOptions{
			AccessKey:       cfg.AccessKey,
			SecretKey:       cfg.SecretKey,
			RoleARN:         cfg.RoleARN,
			RoleSessionName: sessionName,
			Location:        cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("sts assume role: %w", err)
		}
		return creds, nil

	case StrategyStaticKey:
		return credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""), nil

	case StrategyIAM:
		return credentials.NewIAM(""), nil

	case StrategyChain:
		creds := credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
		return creds, nil

	default:
		return nil, fmt.Errorf("unknown credential strategy %d", st)
	}
}
