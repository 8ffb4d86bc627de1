package student

import "github.com/trezcool/masomo-admin/core"

type Repository = core.Repository[Aluno, QueryFilter]
