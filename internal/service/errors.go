package service

import "fmt"

// EstoqueInsuficienteError é a violação de regra de negócio da aprovação de
// orçamento: algum item pede mais unidades do que o produto tem disponível.
// Carrega produto, disponível e necessário para a mensagem ao usuário; nada
// é mutado quando ele é retornado.
type EstoqueInsuficienteError struct {
	Produto    string
	Disponivel int
	Necessario int
}

func (e *EstoqueInsuficienteError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %q: disponivel %d, necessario %d",
		e.Produto, e.Disponivel, e.Necessario)
}
